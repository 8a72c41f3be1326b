package salvage

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// MaxReconstructedItems caps how many items the reconstructor collects.
const MaxReconstructedItems = 10

// Reconstructor is the last-resort strategy: it pattern-matches
// self-contained item objects by their first and last field and stitches
// them into a fresh {"<field>":[...]} document. It knows nothing about the
// envelope the items came from.
type Reconstructor struct {
	Lead  string // first field of an item, e.g. "id"
	Trail string // last field of an item, a string value, e.g. "explanation"
	Limit int

	pattern *regexp.Regexp
}

// NewReconstructor builds a reconstructor for items that start with the
// lead field and end with a string-valued trail field. A non-positive
// limit means MaxReconstructedItems.
func NewReconstructor(lead, trail string, limit int) *Reconstructor {
	if limit <= 0 {
		limit = MaxReconstructedItems
	}
	expr := `(?s)\{\s*"` + regexp.QuoteMeta(lead) + `".*?"` +
		regexp.QuoteMeta(trail) + `"\s*:\s*"[^"]*"\s*\}`

	return &Reconstructor{
		Lead:    lead,
		Trail:   trail,
		Limit:   limit,
		pattern: regexp.MustCompile(expr),
	}
}

// DefaultReconstructor matches the exam item layout: {"id": ..., "explanation": "..."}.
func DefaultReconstructor() *Reconstructor {
	return NewReconstructor("id", "explanation", MaxReconstructedItems)
}

// Reconstruct returns a document holding every intact item found in text,
// up to the limit, under field. Matches that are not valid JSON objects
// (for instance a match that swallowed two half items) are skipped. The
// second return value is false when nothing intact was found.
func (r *Reconstructor) Reconstruct(text, field string) (string, bool) {
	var items []string
	for _, m := range r.pattern.FindAllString(text, -1) {
		if !json.Valid([]byte(m)) {
			continue
		}
		items = append(items, m)
		if len(items) == r.Limit {
			break
		}
	}

	if len(items) == 0 {
		return "", false
	}
	return "{" + strconv.Quote(field) + ":[" + strings.Join(items, ",") + "]}", true
}
