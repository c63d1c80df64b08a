// Package textutil contains small text analysis helpers shared by the
// paradigm strategies and scoring heuristics: tokenization, cross-response
// theme detection and keyword density. This lives in internal to avoid
// committing to public API stability prematurely.
package textutil

import (
	"sort"
	"strings"
	"unicode"
)

// Tokens splits s into lowercased word tokens. A token is a maximal run of
// letters and digits; everything else separates.
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSet returns the distinct tokens of s with at least minLen runes.
func TokenSet(s string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		if len([]rune(tok)) < minLen {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// SharedThemes returns the tokens of at least minLen runes that occur in both
// a and b, sorted alphabetically. An empty slice means no overlap.
func SharedThemes(a, b string, minLen int) []string {
	setA := TokenSet(a, minLen)
	if len(setA) == 0 {
		return nil
	}
	var shared []string
	for tok := range TokenSet(b, minLen) {
		if _, ok := setA[tok]; ok {
			shared = append(shared, tok)
		}
	}
	sort.Strings(shared)
	return shared
}

// KeywordDensity returns the fraction of tokens in s matching any of the
// keywords (case insensitive). Zero for empty input or an empty keyword list.
func KeywordDensity(s string, keywords []string) float64 {
	toks := Tokens(s)
	if len(toks) == 0 || len(keywords) == 0 {
		return 0
	}
	want := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		want[strings.ToLower(strings.TrimSpace(kw))] = struct{}{}
	}
	hits := 0
	for _, tok := range toks {
		if _, ok := want[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(toks))
}

// TopKeywords returns up to n of the most frequent tokens of at least minLen
// runes, most frequent first, ties broken alphabetically.
func TopKeywords(s string, n, minLen int) []string {
	counts := make(map[string]int)
	for _, tok := range Tokens(s) {
		if len([]rune(tok)) < minLen {
			continue
		}
		counts[tok]++
	}
	keys := make([]string, 0, len(counts))
	for tok := range counts {
		keys = append(keys, tok)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
