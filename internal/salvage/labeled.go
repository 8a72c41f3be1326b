package salvage

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	titleLabel  = regexp.MustCompile(`^(?:(?:题目|问题)[:：]?|(?i:question|title)\s*[:：])\s*`)
	answerLabel = regexp.MustCompile(`^(?:(?:参考答案|答案)[:：]?|(?i:reference answer|answer)\s*[:：])\s*`)
	optionLabel = regexp.MustCompile(`^[A-D]\.`)
)

// ParseLabeled reads a single item written as labelled plain-text lines
// ("题目：...", "A. ...", "答案：...") and renders it as a JSON object with
// title, answer and referenceAnswer set, plus options when withOptions is
// true. Unlabelled lines are ignored; later labels of the same kind win.
// It fails when no title line is found.
func ParseLabeled(text string, withOptions bool) (string, bool) {
	item := map[string]any{}
	var options []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case titleLabel.MatchString(line):
			item["title"] = titleLabel.ReplaceAllString(line, "")
		case withOptions && optionLabel.MatchString(line):
			options = append(options, line)
		case answerLabel.MatchString(line):
			answer := answerLabel.ReplaceAllString(line, "")
			item["answer"] = answer
			item["referenceAnswer"] = answer
		}
	}

	if title, _ := item["title"].(string); title == "" {
		return "", false
	}
	if len(options) > 0 {
		item["options"] = options
	}

	out, err := json.Marshal(item)
	if err != nil {
		return "", false
	}
	return string(out), true
}
