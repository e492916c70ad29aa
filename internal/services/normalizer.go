package services

import (
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// MatchMode selects how a keyword pattern is compared against a text.
type MatchMode int

const (
	// MatchExact requires the normalized pattern to be a substring of the
	// normalized text.
	MatchExact MatchMode = iota
	// MatchFuzzy accepts a substring hit or a partial ratio at or above the
	// configured threshold.
	MatchFuzzy
)

// Normalizer is the single place all text cleanup and keyword matching goes
// through, so every component compares text the same way.
type Normalizer struct {
	fuzzyThreshold int
}

func NewNormalizer(fuzzyThreshold int) *Normalizer {
	if fuzzyThreshold <= 0 || fuzzyThreshold > 100 {
		fuzzyThreshold = 80
	}
	return &Normalizer{fuzzyThreshold: fuzzyThreshold}
}

// Characters kept inside words so patterns like "ci/cd", "p&l", "c++",
// ".net" and "attention-to-detail" survive normalization.
func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '/', '&', '+', '#', '.', '-':
		return true
	}
	return false
}

// Normalize lowercases, drops punctuation outside the kept set, collapses
// whitespace and trims. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keepRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "in": {},
	"on": {}, "to": {}, "for": {}, "with": {}, "at": {}, "by": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "as": {}, "it": {},
	"this": {}, "that": {}, "from": {}, "we": {}, "you": {}, "our": {},
	"your": {}, "will": {}, "have": {}, "has": {},
}

// Tokenize normalizes, splits on whitespace and drops stop words. Used by the
// TF-IDF scorer.
func (n *Normalizer) Tokenize(s string) []string {
	fields := strings.Fields(n.Normalize(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Matches reports whether pattern occurs in text under the given mode. Both
// sides are normalized first, so callers can pass raw input.
func (n *Normalizer) Matches(pattern, text string, mode MatchMode) bool {
	p := n.Normalize(pattern)
	t := n.Normalize(text)
	if p == "" || t == "" {
		return false
	}

	if strings.Contains(t, p) {
		return true
	}
	if mode == MatchFuzzy {
		return fuzzy.PartialRatio(p, t) >= n.fuzzyThreshold
	}
	return false
}
