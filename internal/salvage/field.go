package salvage

import (
	"strconv"
	"strings"
)

// ExtractArrayField pulls the array stored under field out of text and
// wraps it as a standalone document: {"<field>":[ ... ]}.
//
// It is meant for documents whose envelope is broken (missing closing
// brace, garbage around it) while the array itself is intact. It fails
// when the quoted field name, the '[' after it, or the matching ']' cannot
// be found.
func ExtractArrayField(text, field string) (string, bool) {
	key := strconv.Quote(field)

	keyAt := strings.Index(text, key)
	if keyAt == -1 {
		return "", false
	}

	rel := strings.IndexByte(text[keyAt+len(key):], '[')
	if rel == -1 {
		return "", false
	}
	open := keyAt + len(key) + rel

	end := FindMatchingBracket(text, open+1, '[', ']')
	if end == -1 {
		return "", false
	}

	var b strings.Builder
	b.Grow(end - open + len(key) + 8)
	b.WriteString("{")
	b.WriteString(key)
	b.WriteString(":[")
	b.WriteString(text[open+1 : end])
	b.WriteString("]}")
	return b.String(), true
}
