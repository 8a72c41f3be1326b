package salvage

import "strings"

// validEscape reports whether c may follow a backslash in a JSON string.
func validEscape(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

// SanitizeEscapes drops every backslash that does not start a valid JSON
// escape sequence. Models regularly emit things like `\d` or `\(` inside
// regex or LaTeX snippets, which a strict decoder rejects.
//
// After this pass every backslash in the output is either the escaped half
// of a `\\` pair or is followed by one of `" \ / b f n r t u`.
func SanitizeEscapes(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' {
			if i+1 < len(text) && validEscape(text[i+1]) {
				b.WriteByte(c)
				escaped = true
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}
