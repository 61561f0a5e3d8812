package lore

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	maxSuggestions  = 3
	suggestionFloor = 0.3
	substringScore  = 0.9
)

// Suggest returns up to three candidates similar to the query, most
// similar first. Substring containment in either direction outranks pure
// edit-distance similarity so partial names surface their full entry.
func Suggest(query string, candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}

	queryLower := strings.ToLower(query)

	type scored struct {
		candidate string
		score     float64
	}
	ranked := make([]scored, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" || seen[candidate] {
			continue
		}
		seen[candidate] = true

		candidateLower := strings.ToLower(candidate)
		var score float64
		if strings.Contains(candidateLower, queryLower) || strings.Contains(queryLower, candidateLower) {
			score = substringScore
		} else {
			score = matchr.JaroWinkler(queryLower, candidateLower, false)
		}
		if score > suggestionFloor {
			ranked = append(ranked, scored{candidate: candidate, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	results := make([]string, 0, maxSuggestions)
	for _, entry := range ranked {
		if len(results) == maxSuggestions {
			break
		}
		results = append(results, entry.candidate)
	}
	return results
}
