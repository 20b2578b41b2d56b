package classify

import (
	"regexp"

	"oficina-import/internal/invoice/match"
	"oficina-import/internal/utils"
)

type volumePattern struct {
	re      *regexp.Regexp
	divisor float64
}

// Порядок важен: литры, миллилитры, килограммы, граммы.
var volumePatterns = []volumePattern{
	{re: regexp.MustCompile(number + `\s*(?:l|lt|lts|litros?)\b`), divisor: 1},
	{re: regexp.MustCompile(number + `\s*ml\b`), divisor: 1000},
	{re: regexp.MustCompile(number + `\s*kg\b`), divisor: 1},
	{re: regexp.MustCompile(number + `\s*(?:g|gr|grs|gramas?)\b`), divisor: 1000},
}

// DetectVolume extracts the per-package volume (liters) or weight (kg).
// Lubricants without a declared quantity default to one liter. ok is false
// when nothing is declared; the value is never zero or negative when ok.
func DetectVolume(description string) (float64, bool) {
	desc := match.Fold(description)
	for _, p := range volumePatterns {
		for _, m := range p.re.FindAllStringSubmatch(desc, -1) {
			v, ok := utils.ParseFloatBR(m[1])
			if ok && v > 0 {
				return v / p.divisor, true
			}
		}
	}
	if reViscosity.MatchString(desc) {
		return 1, true
	}
	return 0, false
}
