// Package similarity scores how alike two short titles are.
package similarity

// DuplicateThreshold is the ratio above which two titles are duplicates.
const DuplicateThreshold = 0.8

// Ratio returns the share of characters of the shorter string that occur
// anywhere in the longer one, divided by the longer string's length.
//
// Membership is tested per character, not per occurrence: a character
// repeated in the shorter string counts every time it appears there as long
// as the longer string contains it once. Lengths are counted in runes. On a
// length tie b is treated as the longer string. Two empty strings score 1.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)

	longer, shorter := rb, ra
	if len(ra) > len(rb) {
		longer, shorter = ra, rb
	}
	if len(longer) == 0 {
		return 1.0
	}

	present := make(map[rune]struct{}, len(longer))
	for _, r := range longer {
		present[r] = struct{}{}
	}

	common := 0
	for _, r := range shorter {
		if _, ok := present[r]; ok {
			common++
		}
	}

	return float64(common) / float64(len(longer))
}

// Max returns the highest Ratio between title and any of existing, or 0
// when existing is empty.
func Max(title string, existing []string) float64 {
	best := 0.0
	for _, e := range existing {
		best = max(best, Ratio(title, e))
	}
	return best
}

// IsDuplicate reports whether title is too close to any of existing.
func IsDuplicate(title string, existing []string) bool {
	return Max(title, existing) > DuplicateThreshold
}
