package classify

import (
	"regexp"
	"strings"

	"oficina-import/internal/invoice/match"
	"oficina-import/internal/invoice/model"
)

const number = `(\d+(?:[.,]\d+)?)`

var (
	reLiterWord  = regexp.MustCompile(`\d\s*(?:l|lt|lts|litros?|ml)\b|\blitros?\b`)
	reWeightWord = regexp.MustCompile(`\d\s*(?:kg|g|gr|grs|gramas?)\b|\bkg\b|quilo`)
)

// ocrUnits maps unit codes reported by the invoice scan.
var ocrUnits = map[string]model.UnitOfMeasure{
	"L":       model.UnitLiter,
	"LT":      model.UnitLiter,
	"LTS":     model.UnitLiter,
	"LTR":     model.UnitLiter,
	"KG":      model.UnitKilogram,
	"KGS":     model.UnitKilogram,
	"UN":      model.UnitUnit,
	"UND":     model.UnitUnit,
	"UNID":    model.UnitUnit,
	"UNIDADE": model.UnitUnit,
	"PC":      model.UnitUnit,
	"PCS":     model.UnitUnit,
	"PCT":     model.UnitUnit,
	"PCA":     model.UnitUnit,
}

// DetectUnit infers the unit of measure. Precedence: viscosity grade, liter
// quantity in the description, OCR hint, weight in the description, UNIT.
func DetectUnit(description, ocrUnitHint string) model.UnitOfMeasure {
	desc := match.Fold(description)
	if reViscosity.MatchString(desc) || reLiterWord.MatchString(desc) {
		return model.UnitLiter
	}
	if u, ok := unitFromHint(ocrUnitHint); ok {
		return u
	}
	if reWeightWord.MatchString(desc) {
		return model.UnitKilogram
	}
	return model.UnitUnit
}

func unitFromHint(hint string) (model.UnitOfMeasure, bool) {
	h := strings.ToUpper(strings.TrimSpace(match.Fold(hint)))
	h = strings.TrimSuffix(h, ".")
	if h == "" {
		return "", false
	}
	if u, ok := ocrUnits[h]; ok {
		return u, true
	}
	switch {
	case strings.Contains(h, "LITRO"):
		return model.UnitLiter, true
	case strings.Contains(h, "QUILO"):
		return model.UnitKilogram, true
	case strings.Contains(h, "PECA"):
		return model.UnitUnit, true
	}
	return "", false
}
