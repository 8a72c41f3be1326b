// Package salvage holds the text-level strategies used to turn raw,
// possibly fenced or truncated model output into something a strict JSON
// decoder accepts. Every function here is pure and never panics; a strategy
// that cannot help reports it through its return value.
package salvage

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fenceJSON     = regexp.MustCompile("```json\\s*")
	fenceBare     = regexp.MustCompile("```\\s*")
	trailingComma = regexp.MustCompile(`, {0,3}([}\]])`)
)

// Normalize strips markdown fences and BOMs, cuts everything before the
// first '{' or '[' and removes trailing commas before a closing bracket.
//
// Blank input becomes "{}". Text without any JSON start character is
// returned cleaned but otherwise as-is; the orchestrator will fail on it
// later. Normalize is idempotent.
func Normalize(raw string) string {
	text := fenceJSON.ReplaceAllString(raw, "")
	text = fenceBare.ReplaceAllString(text, "")
	text = strings.TrimFunc(text, isPadding)

	if text == "" {
		return "{}"
	}

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return text
	}

	return RemoveTrailingCommas(text[start:])
}

func isPadding(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// RemoveTrailingCommas deletes a comma followed by up to three spaces and
// then '}' or ']'. It repeats until nothing changes so runs like ",,}" are
// fully collapsed.
func RemoveTrailingCommas(text string) string {
	for {
		next := trailingComma.ReplaceAllString(text, "$1")
		if next == text {
			return text
		}
		text = next
	}
}
