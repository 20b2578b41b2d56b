package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oficina-import/internal/invoice/model"
)

func TestClassify_DefaultRules(t *testing.T) {
	c := MustNew(DefaultRules())

	tests := []struct {
		name string
		desc string
		code string
		want model.CategoryTag
	}{
		{name: "lubricant with viscosity", desc: "Óleo Mobil Super 5W30 1L", want: model.CategoryOilLubricant},
		{name: "tecfil cabin code in description", desc: "Filtro de Ar Condicionado Tecfil ACP123", want: model.CategoryCabinAirFilter},
		{name: "wega oil code in description", desc: "Filtro Wega WO123", want: model.CategoryOilFilter},
		{name: "tecfil air supplier code", desc: "Elemento", code: "ARL6079", want: model.CategoryAirFilter},
		{name: "mann fuel code", code: "WK 820", want: model.CategoryFuelFilter},
		{name: "mann oil code", code: "W 712/95", want: model.CategoryOilFilter},
		{name: "mann cabin code", code: "CU2939", want: model.CategoryCabinAirFilter},
		{name: "fram oil code", code: "PH5949", want: model.CategoryOilFilter},
		{name: "fram fuel code", code: "G5555", want: model.CategoryFuelFilter},
		{name: "mahle air code", code: "LX 1566", want: model.CategoryAirFilter},
		{name: "tecfil fuel code", code: "GI 04/7", want: model.CategoryFuelFilter},
		{name: "oleo wins over filtro", desc: "Filtro de óleo", code: "XYZ", want: model.CategoryOilLubricant},
		{name: "fuel filter keyword", desc: "Filtro de Combustível", want: model.CategoryFuelFilter},
		{name: "cabin filter keyword", desc: "Filtro de Cabine", want: model.CategoryCabinAirFilter},
		{name: "air filter keyword", desc: "Filtro de ar do motor", want: model.CategoryAirFilter},
		{name: "bare filter", desc: "Filtro Hengst H97W", want: model.CategoryOilFilter},
		{name: "filter brand without filtro", desc: "Elemento Tecfil", want: model.CategoryOilFilter},
		{name: "additive", desc: "Aditivo para Radiador Paraflu 1L", want: model.CategoryAdditive},
		{name: "arla", desc: "ARLA 32 20L", want: model.CategoryAdditive},
		{name: "injector cleaner", desc: "Limpa Bico Wurth 300ml", want: model.CategoryAdditive},
		{name: "grease", desc: "Graxa Industrial 500g", want: model.CategoryGrease},
		{name: "brake fluid", desc: "Fluido de Freio DOT 4 500ml", want: model.CategoryAccessory},
		{name: "unknown", desc: "Lampada H4 12V", want: model.CategoryOther},
		{name: "empty", want: model.CategoryOther},
		{name: "blank", desc: "   ", code: "  ", want: model.CategoryOther},
		{name: "non latin", desc: "масло моторное", want: model.CategoryOther},
		{name: "unknown code falls back to description", desc: "Oleo Lubrax 20W50", code: "123456", want: model.CategoryOilLubricant},
		{name: "mann air code", code: "C 2700", want: model.CategoryAirFilter},
		{name: "coolant grade is not a fram code", desc: "Aditivo Radiador G12 1L", want: model.CategoryAdditive},
		{name: "coolant g13", desc: "Aditivo Paraflu G13", want: model.CategoryAdditive},
		{name: "short letter code in grease name", desc: "Graxa Azul C 20", want: model.CategoryGrease},
		{name: "letter code in description ignored", desc: "Aditivo Radiador W 1000", want: model.CategoryAdditive},
		{name: "short fram g code rejected", code: "G12", want: model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.desc, tt.code))
		})
	}
}

func TestClassify_SupplierCodeBeforeDescription(t *testing.T) {
	c := MustNew(DefaultRules())

	tag, rule := c.Explain("Oleo 5W30", "PSL55")
	assert.Equal(t, model.CategoryOilFilter, tag)
	assert.Equal(t, "tecfil oil", rule)

	tag, rule = c.Explain("Oleo 5W30", "")
	assert.Equal(t, model.CategoryOilLubricant, tag)
	assert.Equal(t, "viscosity", rule)

	tag, rule = c.Explain("Lampada", "")
	assert.Equal(t, model.CategoryOther, tag)
	assert.Empty(t, rule)
}

func TestClassify_CodeOnlyRules(t *testing.T) {
	c := MustNew(RuleSet{Codes: []Rule{
		{Name: "letter", Tag: model.CategoryFuelFilter, All: []string{`g\d{4}`}, CodeOnly: true},
	}})

	tag, rule := c.Explain("", "G5555")
	assert.Equal(t, model.CategoryFuelFilter, tag)
	assert.Equal(t, "letter", rule)

	tag, rule = c.Explain("Peca G5555", "")
	assert.Equal(t, model.CategoryOther, tag)
	assert.Empty(t, rule)
}

func TestClassify_RuleOrderIsPrecedence(t *testing.T) {
	brandA := Rule{Name: "brand a", Tag: model.CategoryAirFilter, All: []string{`x\d+`}}
	brandB := Rule{Name: "brand b", Tag: model.CategoryFuelFilter, All: []string{`x1\d+`}}

	c := MustNew(RuleSet{Codes: []Rule{brandA, brandB}})
	assert.Equal(t, model.CategoryAirFilter, c.Classify("", "X123"))

	c = MustNew(RuleSet{Codes: []Rule{brandB, brandA}})
	assert.Equal(t, model.CategoryFuelFilter, c.Classify("", "X123"))
}

func TestClassify_NoneExcludes(t *testing.T) {
	c := MustNew(RuleSet{Descriptions: []Rule{
		{Name: "air", Tag: model.CategoryAirFilter, All: []string{`filtro`, `\bar\b`}, None: []string{`condicionado`}},
	}})
	assert.Equal(t, model.CategoryAirFilter, c.Classify("filtro de ar", ""))
	assert.Equal(t, model.CategoryOther, c.Classify("filtro de ar condicionado", ""))
}

func TestNew_InvalidRules(t *testing.T) {
	_, err := New(RuleSet{Codes: []Rule{{Name: "bad", Tag: model.CategoryOther, All: []string{`[invalid`}}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile rule bad")

	_, err = New(RuleSet{Descriptions: []Rule{{Name: "bad none", Tag: model.CategoryOther, All: []string{`ok`}, None: []string{`(`}}}})
	require.Error(t, err)

	_, err = New(RuleSet{Descriptions: []Rule{{Name: "empty", Tag: model.CategoryOther}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no patterns")

	assert.Panics(t, func() {
		MustNew(RuleSet{Codes: []Rule{{Name: "bad", All: []string{`(`}}}})
	})
}

func TestViscosityImpliesLubricantLiterAndVolume(t *testing.T) {
	c := MustNew(DefaultRules())
	descs := []string{
		"Óleo Mobil Super 5W30 1L",
		"Lubrax Essencial 20W-50",
		"Oleo Sintetico 0w20 4 litros",
		"SELENIA K 15W40",
		"Castrol Magnatec 10W40 500ml",
	}
	for _, d := range descs {
		assert.Equal(t, model.CategoryOilLubricant, c.Classify(d, ""), d)
		assert.Equal(t, model.UnitLiter, DetectUnit(d, ""), d)
		v, ok := DetectVolume(d)
		assert.True(t, ok, d)
		assert.Greater(t, v, 0.0, d)
	}
}
