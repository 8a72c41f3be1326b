package examparse

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var htmlTag = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)

// cleanMarkup converts item text that contains HTML tags to Markdown.
// Plain text is returned unchanged, as is text the converter rejects.
func cleanMarkup(s string) string {
	if !htmlTag.MatchString(s) {
		return s
	}

	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(md)
}
