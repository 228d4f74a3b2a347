// Package repetition detects near-duplicate replies across conversation turns.
//
// The guard compares a candidate reply against the most recent turn's reply
// using normalized Levenshtein similarity. Above the threshold, the candidate
// is replaced by a canned variation so the assistant does not repeat itself
// word for word. Comparison is case-insensitive.
package repetition

import (
	"strings"
	"unicode/utf8"
)

// Threshold is the similarity above which a candidate counts as repetitive.
const Threshold = 0.8

// substitutes holds the canned de-duplication reply per language code.
// Languages without a variant fall back to English.
var substitutes = map[string]string{
	"en": "I think I've mentioned this before. Would you like to know something else or need more details on this topic?",
	"hi": "मुझे लगता है कि मैंने पहले इस बारे में बताया था। क्या आप कुछ और जानना चाहेंगे या इस विषय पर अधिक विवरण चाहिए?",
}

// Guard applies repetition detection against the last stored reply.
func Guard(lastReply, candidate, language string) (string, bool) {
	if lastReply == "" || candidate == "" {
		return candidate, false
	}
	if Similarity(lastReply, candidate) <= Threshold {
		return candidate, false
	}
	if sub, ok := substitutes[language]; ok {
		return sub, true
	}
	return substitutes["en"], true
}

// Similarity returns the normalized Levenshtein similarity of a and b in
// [0, 1]. Identical strings score 1, as do two empty strings. Lengths are
// counted in runes to match the distance, so multibyte scripts normalize
// correctly.
func Similarity(a, b string) float64 {
	longer, shorter := a, b
	longerLen := utf8.RuneCountInString(longer)
	if shorterLen := utf8.RuneCountInString(shorter); shorterLen > longerLen {
		longer, shorter = shorter, longer
		longerLen = shorterLen
	}
	if longerLen == 0 {
		return 1.0
	}
	dist := EditDistance(longer, shorter)
	return float64(longerLen-dist) / float64(longerLen)
}

// EditDistance computes the classic single-character insert/delete/substitute
// Levenshtein distance between a and b, case-insensitively. It keeps a single
// row of the DP table, so memory is O(min-side length).
func EditDistance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	ra := []rune(a)
	rb := []rune(b)

	costs := make([]int, len(rb)+1)
	for j := range costs {
		costs[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prev := costs[0] // cost[i-1][j-1]
		costs[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := costs[j]
			if ra[i-1] == rb[j-1] {
				costs[j] = prev
			} else {
				costs[j] = min(prev, min(costs[j-1], costs[j])) + 1
			}
			prev = cur
		}
	}
	return costs[len(rb)]
}
