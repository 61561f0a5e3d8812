// Package dice implements dice-notation parsing and rolling for DungeonMind.
//
// Notation follows the common tabletop grammar: an ordered sequence of
// dice terms ("2d6", "d20") and integer constants joined by "+" or "-",
// case-insensitive and whitespace-insignificant. A count of 1 may be
// omitted, so "d20" is equivalent to "1d20".
package dice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"unicode"

	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
)

const (
	// maxCount caps dice per term to guard against pathological input.
	maxCount = 1000
	// maxSides caps faces per die to guard against pathological input.
	maxSides = 1000
)

// Source supplies uniform random integers for rolls. IntN returns a value
// in [0, n). Implementations must not block.
type Source interface {
	IntN(n int) int
}

// Term describes a group of identical dice and the sign applied to its
// contribution to the total.
type Term struct {
	Count int
	Sides int
	Sign  int
}

// Expression is a parsed dice notation: an ordered sequence of dice terms
// plus a signed integer modifier folded from all constant terms.
type Expression struct {
	Notation string
	Terms    []Term
	Modifier int
}

// TermRoll captures the results for a single dice term. Results holds the
// unsigned face values as physically rolled; Sign records how the term
// contributed to the expression total.
type TermRoll struct {
	Sides   int
	Sign    int
	Results []int
	Total   int
}

// Result is the resolved outcome of an Expression. Total sums every term's
// signed contribution plus the modifier; the breakdowns always report
// unsigned face values.
type Result struct {
	Notation string
	Rolls    []TermRoll
	Modifier int
	Total    int
}

// Faces returns every rolled face value in roll order, across all terms.
func (r Result) Faces() []int {
	var faces []int
	for _, roll := range r.Rolls {
		faces = append(faces, roll.Results...)
	}
	return faces
}

// invalidNotation builds the coded error for malformed notation, naming the
// offending substring so the caller can correct it.
func invalidNotation(notation, offending, reason string) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidNotation,
		fmt.Sprintf("invalid dice notation %q: %s in %q", notation, reason, offending),
		map[string]string{"notation": notation, "term": offending},
	)
}

// Parse parses dice notation into an Expression.
//
// The grammar is an ordered sequence of signed dice-or-constant terms. At
// least one dice term is required; constants fold into the modifier with
// their sign. Counts must be 1..1000 and faces 2..1000.
func Parse(notation string) (Expression, error) {
	compact := stripSpace(strings.ToLower(notation))
	if compact == "" {
		return Expression{}, invalidNotation(notation, notation, "empty notation")
	}

	expr := Expression{Notation: notation}
	sign := 1
	i := 0
	// An explicit leading sign applies to the first term.
	if compact[0] == '+' || compact[0] == '-' {
		if compact[0] == '-' {
			sign = -1
		}
		i = 1
	}

	for i < len(compact) {
		j := i
		for j < len(compact) && compact[j] != '+' && compact[j] != '-' {
			j++
		}
		token := compact[i:j]
		if token == "" {
			return Expression{}, invalidNotation(notation, string(compact[i-1]), "dangling operator")
		}

		if strings.ContainsRune(token, 'd') {
			term, err := parseDiceTerm(notation, token, sign)
			if err != nil {
				return Expression{}, err
			}
			expr.Terms = append(expr.Terms, term)
		} else {
			value, err := strconv.Atoi(token)
			if err != nil {
				return Expression{}, invalidNotation(notation, token, "unrecognized term")
			}
			expr.Modifier += sign * value
		}

		if j < len(compact) {
			if compact[j] == '-' {
				sign = -1
			} else {
				sign = 1
			}
		}
		i = j + 1
	}

	if len(expr.Terms) == 0 {
		return Expression{}, invalidNotation(notation, compact, "no dice term")
	}
	return expr, nil
}

// parseDiceTerm parses a single "NdM" token with the sign already resolved.
func parseDiceTerm(notation, token string, sign int) (Term, error) {
	countStr, sidesStr, _ := strings.Cut(token, "d")

	count := 1
	if countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil {
			return Term{}, invalidNotation(notation, token, "malformed dice count")
		}
		count = parsed
	}
	if count < 1 || count > maxCount {
		return Term{}, invalidNotation(notation, token, fmt.Sprintf("dice count must be between 1 and %d", maxCount))
	}

	if sidesStr == "" {
		return Term{}, invalidNotation(notation, token, "missing dice faces")
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Term{}, invalidNotation(notation, token, "malformed dice faces")
	}
	if sides < 2 || sides > maxSides {
		return Term{}, invalidNotation(notation, token, fmt.Sprintf("dice faces must be between 2 and %d", maxSides))
	}

	return Term{Count: count, Sides: sides, Sign: sign}, nil
}

// Roll evaluates the expression against the provided random source.
//
// Terms are rolled in left-to-right order and each die is drawn
// independently, so identical sources produce identical results.
func (e Expression) Roll(src Source) Result {
	result := Result{
		Notation: e.Notation,
		Modifier: e.Modifier,
		Total:    e.Modifier,
	}

	for _, term := range e.Terms {
		roll := TermRoll{
			Sides:   term.Sides,
			Sign:    term.Sign,
			Results: make([]int, term.Count),
		}
		for i := 0; i < term.Count; i++ {
			value := src.IntN(term.Sides) + 1
			roll.Results[i] = value
			roll.Total += value
		}
		result.Rolls = append(result.Rolls, roll)
		result.Total += term.Sign * roll.Total
	}

	return result
}

// Roll parses notation and evaluates it with a deterministic seeded source.
// Given the same seed and notation, Roll always produces the same Result.
func Roll(notation string, seed int64) (Result, error) {
	expr, err := Parse(notation)
	if err != nil {
		return Result{}, err
	}
	return expr.Roll(NewSeededSource(seed)), nil
}

// NewSeededSource returns a Source backed by math/rand with the given seed.
func NewSeededSource(seed int64) Source {
	return seededSource{rng: rand.New(rand.NewSource(seed))}
}

type seededSource struct {
	rng *rand.Rand
}

func (s seededSource) IntN(n int) int {
	return s.rng.Intn(n)
}

// stripSpace removes every whitespace rune from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
