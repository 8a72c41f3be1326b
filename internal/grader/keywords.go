package grader

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxKeywords caps how many keywords are taken from one text.
const MaxKeywords = 10

var (
	// Keeps ASCII word characters, whitespace and common CJK ideographs.
	nonKeyword = regexp.MustCompile(`[^\w\s\x{4e00}-\x{9fa5}]`)

	stopWords = map[string]struct{}{
		"的": {}, "是": {}, "在": {}, "有": {}, "和": {}, "与": {}, "或": {}, "但": {}, "而": {},
		"如果": {}, "因为": {}, "所以": {},
		"the": {}, "is": {}, "are": {}, "in": {}, "on": {}, "at": {}, "and": {}, "or": {},
		"but": {}, "if": {}, "because": {}, "so": {},
	}
)

// Keywords takes the first MaxKeywords tokens of text and returns them
// deduplicated, in order of first appearance. Tokens of one character and
// stop words are dropped before the cap; repeats are not, so a text that
// repeats one word fills the cap with it.
func Keywords(text string) []string {
	cleaned := nonKeyword.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == MaxKeywords {
			break
		}
	}

	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// Overlap is the keyword-overlap ratio of two texts: shared keywords over
// the size of the larger keyword set. It is 0 when neither has keywords.
func Overlap(a, b string) float64 {
	ka, kb := Keywords(a), Keywords(b)

	denom := max(len(ka), len(kb))
	if denom == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(kb))
	for _, k := range kb {
		set[k] = struct{}{}
	}

	shared := 0
	for _, k := range ka {
		if _, ok := set[k]; ok {
			shared++
		}
	}
	return float64(shared) / float64(denom)
}
