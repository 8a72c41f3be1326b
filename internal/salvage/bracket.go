package salvage

// FindMatchingBracket scans text from start, which must be the index just
// after an opening bracket, and returns the index of the close bracket that
// balances it. Brackets inside JSON strings and escaped characters are
// ignored. It returns -1 when the bracket is never closed.
//
// Scanning is byte based: every structural character is ASCII and never
// appears inside a multi-byte UTF-8 sequence.
func FindMatchingBracket(text string, start int, open, close byte) int {
	if start < 0 {
		return -1
	}

	depth := 1
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
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
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
