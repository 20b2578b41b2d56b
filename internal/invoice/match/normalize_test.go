package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "accents hyphen punctuation", in: "Óleo-Lubrificante  5W30!", want: "oleo lubrificante 5w30"},
		{name: "underscore", in: "filtro_ar_motor", want: "filtro ar motor"},
		{name: "cedilla and tilde", in: "Peça de Reposição", want: "peca de reposicao"},
		{name: "punctuation between words", in: "a ! b", want: "a b"},
		{name: "trim", in: "   Wega   WO-123  ", want: "wega wo 123"},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: "!!! ### ???", want: ""},
		{name: "non latin", in: "масло 5W30", want: "5w30"},
		{name: "slash and dot dropped", in: "W 712/95 1.5L", want: "w 71295 15l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Óleo-Lubrificante  5W30!",
		"a ! b",
		"  --__--  ",
		"Filtro de Ar Condicionado Tecfil ACP123",
		"Graxa  Azul\t500g (lítio)",
		"ÀÉÎÕÜ çñ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "oleo 5w-30 (sintetico)", Fold("Óleo 5W-30 (Sintético)"))
	assert.Equal(t, "", Fold(""))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"filtro", "oleo", "wega", "wo123"}, Words("filtro de oleo wega wo123 oleo"))
	assert.Empty(t, Words("a de 1l"))
}
