package salvage

// RecoverTruncated returns the prefix of text that ends at the last point
// where the top-level brace depth returned to zero. Anything after it (a
// cut-off object, trailing prose from the model) is discarded.
//
// The second return value is false when no top-level object ever closed.
// A '}' seen at depth zero is ignored, so stray closers in leading prose do
// not poison the scan.
func RecoverTruncated(text string) (string, bool) {
	last := -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString || c != '{' {
			continue
		}

		end := FindMatchingBracket(text, i+1, '{', '}')
		if end == -1 {
			break
		}
		last = end
		i = end
	}

	if last == -1 {
		return "", false
	}
	return text[:last+1], true
}
