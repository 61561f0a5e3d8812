// Package character defines the character-sheet domain model and the
// validated patch operations applied to it.
package character

import (
	"fmt"
	"strings"

	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
)

// Character is a player-controlled entity. Stats is an open-ended mapping
// from stat name to value; Inventory preserves insertion order and allows
// duplicates. Gold never goes negative.
type Character struct {
	ID        string
	Name      string
	Stats     map[string]int
	Inventory []string
	Gold      int
	Location  string
}

// Clone returns a deep copy, so callers can hand out snapshots without
// aliasing store-owned state.
func (c Character) Clone() Character {
	cloned := c
	if c.Stats != nil {
		cloned.Stats = make(map[string]int, len(c.Stats))
		for name, value := range c.Stats {
			cloned.Stats[name] = value
		}
	}
	if c.Inventory != nil {
		cloned.Inventory = append([]string(nil), c.Inventory...)
	}
	return cloned
}

// DefaultSheet returns the starting character sheet for a new adventurer.
func DefaultSheet(name string) Character {
	return Character{
		Name: name,
		Stats: map[string]int{
			"hp":        20,
			"max_hp":    20,
			"strength":  10,
			"dexterity": 10,
			"wisdom":    10,
		},
		Inventory: []string{"torch", "rope", "dagger"},
		Gold:      15,
	}
}

// Validate checks the invariants required to admit a character into the store.
func Validate(c Character) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	}
	if c.Gold < 0 {
		return invalidPatch("gold", fmt.Sprintf("gold must not be negative, got %d", c.Gold))
	}
	return nil
}

// Patch is a partial mutation of a character. All fields are optional;
// nil/empty fields leave the corresponding sheet field untouched.
type Patch struct {
	SetStats    map[string]int // absolute stat values
	AdjustStats map[string]int // stat deltas
	AddItems    []string       // appended to inventory in order
	RemoveItems []string       // each removes one matching inventory entry
	GoldDelta   *int           // relative gold change
	SetGold     *int           // absolute gold value
	Location    *string        // new location id (validated by the caller)
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return len(p.SetStats) == 0 && len(p.AdjustStats) == 0 &&
		len(p.AddItems) == 0 && len(p.RemoveItems) == 0 &&
		p.GoldDelta == nil && p.SetGold == nil && p.Location == nil
}

// ApplyPatch applies a patch to a character and returns the new sheet.
//
// Application is atomic: the input is never mutated and any validation
// failure returns the zero Character, so a caller either persists the full
// result or keeps its existing record untouched.
func ApplyPatch(existing Character, patch Patch) (Character, error) {
	result := existing.Clone()

	if len(patch.SetStats) > 0 || len(patch.AdjustStats) > 0 {
		if result.Stats == nil {
			result.Stats = make(map[string]int)
		}
		for name, value := range patch.SetStats {
			result.Stats[name] = value
		}
		for name, delta := range patch.AdjustStats {
			result.Stats[name] += delta
		}
		clampStats(result.Stats)
	}

	result.Inventory = append(result.Inventory, patch.AddItems...)
	for _, item := range patch.RemoveItems {
		index := indexOf(result.Inventory, item)
		if index < 0 {
			return Character{}, invalidPatch("inventory", fmt.Sprintf("item %q is not in the inventory", item))
		}
		result.Inventory = append(result.Inventory[:index], result.Inventory[index+1:]...)
	}

	if patch.SetGold != nil {
		if *patch.SetGold < 0 {
			return Character{}, invalidPatch("gold", fmt.Sprintf("gold must not be negative, got %d", *patch.SetGold))
		}
		result.Gold = *patch.SetGold
	}
	if patch.GoldDelta != nil {
		updated := result.Gold + *patch.GoldDelta
		if updated < 0 {
			return Character{}, invalidPatch("gold", fmt.Sprintf("insufficient gold: have %d, need %d", result.Gold, -*patch.GoldDelta))
		}
		result.Gold = updated
	}

	if patch.Location != nil {
		result.Location = *patch.Location
	}

	return result, nil
}

// clampStats caps every stat "x" at "max_x" when both are present. The
// original sheets pair hp with max_hp; the rule generalizes to any pair.
func clampStats(stats map[string]int) {
	for name, value := range stats {
		if max, ok := stats["max_"+name]; ok && value > max {
			stats[name] = max
		}
	}
}

func indexOf(items []string, item string) int {
	for i, candidate := range items {
		if candidate == item {
			return i
		}
	}
	return -1
}

func invalidPatch(field, reason string) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidPatch,
		fmt.Sprintf("invalid patch for %s: %s", field, reason),
		map[string]string{"field": field, "reason": reason},
	)
}
