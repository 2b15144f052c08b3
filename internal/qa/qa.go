// Package qa holds text heuristics used to review manuscript prose:
// sentence splitting, overlong sentences and passive constructions.
package qa

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxChars is the sentence length above which a sentence is long.
const DefaultMaxChars = 120

var passiveRe = regexp.MustCompile(`(?i)\b(?:is|are|was|were|be|been|being)\s+\w+ed\b`)

// Normalize returns text in Unicode NFC so composed and decomposed
// characters count the same.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// SplitSentences splits after '.', '!' or '?' whenever whitespace follows.
// The whitespace is dropped; everything else is kept verbatim.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '.' && r != '!' && r != '?' {
			i += size
			continue
		}
		end := i + size
		j := end
		for j < len(text) {
			ws, wsize := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(ws) {
				break
			}
			j += wsize
		}
		if j == end {
			i = end
			continue
		}
		out = append(out, text[start:end])
		start, i = j, j
	}
	return append(out, text[start:])
}

// LongSentences returns the sentences with more than maxChars characters.
func LongSentences(text string, maxChars int) []string {
	out := []string{}
	for _, s := range SplitSentences(Normalize(text)) {
		if utf8.RuneCountInString(s) > maxChars {
			out = append(out, s)
		}
	}
	return out
}

// IsPassive reports whether sentence contains a form of "to be" followed
// by a word ending in "ed".
func IsPassive(sentence string) bool {
	return passiveRe.MatchString(sentence)
}

// PassiveSentences returns the sentences matching IsPassive.
func PassiveSentences(text string) []string {
	out := []string{}
	for _, s := range SplitSentences(Normalize(text)) {
		if IsPassive(s) {
			out = append(out, s)
		}
	}
	return out
}

// Excerpt shortens s to at most n characters for display.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n]) + "..."
}
