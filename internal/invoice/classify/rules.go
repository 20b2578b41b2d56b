package classify

import "oficina-import/internal/invoice/model"

// Rule matches when every pattern in All matches and no pattern in None does.
// Patterns are regexes applied case-insensitively to folded text (lowercase,
// no diacritics).
type Rule struct {
	Name string
	Tag  model.CategoryTag
	All  []string
	None []string
	// CodeOnly rules are tried on the supplier code only, never on text
	// embedded in the description.
	CodeOnly bool
}

// RuleSet holds the ordered tables. Order is precedence: first hit wins.
type RuleSet struct {
	Codes        []Rule // supplier filter-code families
	Descriptions []Rule // description keywords
}

// code builds a filter-code rule: prefix followed by an optional separator and
// at least two digits ("ACP123", "WO-340", "W 712/95").
func code(name string, tag model.CategoryTag, prefixes string) Rule {
	return Rule{
		Name: name,
		Tag:  tag,
		All:  []string{`(?:^|[^a-z0-9])(?:` + prefixes + `)[\s-]?\d{2,5}`},
	}
}

// letterCode is a one-letter family ("G5555", "C 2700", "W 712/95"). A single
// letter plus digits is common in product names ("Aditivo G12"), so these need
// the family's real digit count and only match the supplier code.
func letterCode(name string, tag model.CategoryTag, prefix, digits string) Rule {
	return Rule{
		Name:     name,
		Tag:      tag,
		All:      []string{`(?:^|[^a-z0-9])` + prefix + `[\s-]?\d` + digits},
		CodeOnly: true,
	}
}

// DefaultRules returns the built-in tables used by the shop.
func DefaultRules() RuleSet {
	return RuleSet{
		// Brand families in fixed order. Tecfil before Wega before Mann so that
		// overlapping prefixes (GI/G, WO/W, ...) resolve deterministically.
		// Inside a family the longer/rarer prefix goes first.
		Codes: []Rule{
			code("tecfil cabin", model.CategoryCabinAirFilter, `acp|acs`),
			code("tecfil fuel", model.CategoryFuelFilter, `gi|psc|pec|psd`),
			code("tecfil air", model.CategoryAirFilter, `arl|ars`),
			code("tecfil oil", model.CategoryOilFilter, `psl|pel`),

			code("wega cabin", model.CategoryCabinAirFilter, `akx|akw`),
			code("wega fuel", model.CategoryFuelFilter, `fci|jfc|fcd`),
			code("wega air", model.CategoryAirFilter, `fap|jfa`),
			code("wega oil", model.CategoryOilFilter, `woe|wo|jfo`),

			code("mann cabin", model.CategoryCabinAirFilter, `cuk|cu`),
			code("mann fuel", model.CategoryFuelFilter, `wk`),
			letterCode("mann air", model.CategoryAirFilter, `c`, `{3,5}`),
			code("mann oil", model.CategoryOilFilter, `hu`),
			letterCode("mann oil w", model.CategoryOilFilter, `w`, `{3,5}`),

			code("fram cabin", model.CategoryCabinAirFilter, `cf`),
			code("fram air", model.CategoryAirFilter, `ca`),
			letterCode("fram fuel", model.CategoryFuelFilter, `g`, `{4,5}`),
			code("fram oil", model.CategoryOilFilter, `ph`),

			code("mahle cabin", model.CategoryCabinAirFilter, `la|lak`),
			code("mahle fuel", model.CategoryFuelFilter, `kl|kx`),
			code("mahle air", model.CategoryAirFilter, `lx`),
			code("mahle oil", model.CategoryOilFilter, `oc|ox`),
		},
		Descriptions: []Rule{
			{
				Name: "lubricant",
				Tag:  model.CategoryOilLubricant,
				All: []string{`\d+w-?\d+|\boleo\b|lubrificante|\b(?:mobil|lubrax|castrol|helix|ipiranga|petronas|selenia|elaion|havoline|motul|valvoline|quartz|texaco)\b`},
			},
			{
				Name: "cabin filter",
				Tag:  model.CategoryCabinAirFilter,
				All:  []string{`filtro|filter`, `cabine|condicionado|\bpolen\b|antipolen|habitaculo|\bac\b`},
			},
			{
				Name: "fuel filter",
				Tag:  model.CategoryFuelFilter,
				All:  []string{`filtro|filter`, `combustivel|gasolina|diesel|etanol|\balcool\b|\bfuel\b`},
			},
			{
				Name: "air filter",
				Tag:  model.CategoryAirFilter,
				All:  []string{`filtro|filter`, `\bar\b|\bair\b`},
				None: []string{`condicionado`},
			},
			{
				Name: "bare filter",
				Tag:  model.CategoryOilFilter,
				All:  []string{`filtro|filter`},
			},
			{
				Name: "filter brand",
				Tag:  model.CategoryOilFilter,
				All:  []string{`\b(?:tecfil|wega|mann|fram|mahle|metal leve|hengst|vox)\b`},
			},
			{
				Name: "additive",
				Tag:  model.CategoryAdditive,
				All: []string{`aditivo|radiador|arrefecimento|limpa[\s-]?(?:bico|injetor)|descarbonizante|anti[\s-]?ferrugem|\barla\b|desengripante`},
			},
			{
				Name: "grease",
				Tag:  model.CategoryGrease,
				All:  []string{`graxa|grease`},
			},
			{
				Name: "brake and hydraulic fluid",
				Tag:  model.CategoryAccessory,
				All:  []string{`freio|\bdot[\s-]?[345]\b|hidraulic|brake`},
			},
		},
	}
}
