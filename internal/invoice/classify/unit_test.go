package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oficina-import/internal/invoice/model"
)

func TestDetectUnit(t *testing.T) {
	tests := []struct {
		name string
		desc string
		hint string
		want model.UnitOfMeasure
	}{
		{name: "viscosity", desc: "Óleo Mobil Super 5W30 1L", want: model.UnitLiter},
		{name: "viscosity beats hint", desc: "Oleo 20W50", hint: "UN", want: model.UnitLiter},
		{name: "liter quantity", desc: "Aditivo Radiador 1L", want: model.UnitLiter},
		{name: "milliliter quantity", desc: "Limpa Bico 300ml", want: model.UnitLiter},
		{name: "liter word", desc: "Agua desmineralizada litro", want: model.UnitLiter},
		{name: "hint LT", desc: "Arla 32", hint: "LT", want: model.UnitLiter},
		{name: "hint litro", desc: "Arla 32", hint: "Litros", want: model.UnitLiter},
		{name: "hint KG", desc: "Graxa", hint: "KG", want: model.UnitKilogram},
		{name: "hint quilo", desc: "Graxa Azul", hint: "quilograma", want: model.UnitKilogram},
		{name: "hint peca", desc: "Filtro", hint: "Peça", want: model.UnitUnit},
		{name: "hint pc with dot", desc: "Filtro", hint: "pç.", want: model.UnitUnit},
		{name: "hint beats weight in description", desc: "Graxa 1kg", hint: "UN", want: model.UnitUnit},
		{name: "weight in description", desc: "Graxa 1kg", want: model.UnitKilogram},
		{name: "grams in description", desc: "Graxa Industrial 500g", want: model.UnitKilogram},
		{name: "quilo word", desc: "Graxa por quilo", want: model.UnitKilogram},
		{name: "unknown hint falls through", desc: "Filtro", hint: "XYZ", want: model.UnitUnit},
		{name: "empty", want: model.UnitUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectUnit(tt.desc, tt.hint))
		})
	}
}
