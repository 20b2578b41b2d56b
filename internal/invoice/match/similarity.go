package match

import "strings"

// Similarity scores two product names in [0,1]. Cheap containment and
// word-overlap heuristic tuned for short names with brand and grade tokens in any
// order; not an edit distance.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb && na != "" {
		return 1
	}
	// two empty names are no evidence of a duplicate, so 0 rather than 1
	if na == "" || nb == "" {
		return 0
	}

	// containment: "mobil super 5w30" inside "oleo mobil super 5w30 1l"
	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		return float64(len(shorter)) / float64(len(longer))
	}

	wa, wb := Words(na), Words(nb)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	// matches are counted from a's words only, so this branch is not
	// symmetric: "abc abcd" vs "abcde xyz" is 1, the reverse is 0.5.
	matching := 0
	for _, x := range wa {
		for _, y := range wb {
			if x == y || strings.Contains(y, x) || strings.Contains(x, y) {
				matching++
				break
			}
		}
	}
	den := len(wa)
	if len(wb) > den {
		den = len(wb)
	}
	return float64(matching) / float64(den)
}
