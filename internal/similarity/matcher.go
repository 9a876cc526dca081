package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultThreshold is the Jaccard score at or above which two claim texts
// are treated as duplicates unless a caller tunes it
const DefaultThreshold = 0.6

// Matcher scores claim texts for near-duplicate detection
type Matcher struct{}

// NewMatcher creates a new matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Similarity returns the Jaccard index of the two texts' token sets,
// in [0,1]. Token sets, not bags: repeated words carry no extra weight.
// Two texts that both normalize to nothing score 0, never a match.
func (m *Matcher) Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// IsDuplicate reports whether the two texts score at or above the threshold.
// A non-positive threshold falls back to DefaultThreshold.
func (m *Matcher) IsDuplicate(a, b string, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return m.Similarity(a, b) >= threshold
}

// tokenSet normalizes a text into its set of significant tokens:
// lowercase, punctuation stripped, whitespace-split, tokens of one or two
// runes discarded
func tokenSet(text string) map[string]struct{} {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)

	set := make(map[string]struct{})
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
