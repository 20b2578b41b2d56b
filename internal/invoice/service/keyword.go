package service

import (
	"strings"

	"oficina-import/internal/invoice/match"
)

// generic words say nothing about which product it is
var genericWords = map[string]struct{}{
	"oleo": {}, "filtro": {}, "lubrificante": {}, "aditivo": {}, "graxa": {},
	"fluido": {}, "para": {}, "com": {}, "sem": {}, "tipo": {}, "kit": {},
}

// SearchKeyword picks the word used to pre-filter catalog candidates: the first
// normalized word longer than two characters that is not generic, else the
// first word.
func SearchKeyword(description string) string {
	n := match.Normalize(description)
	for _, w := range match.Words(n) {
		if _, generic := genericWords[w]; !generic {
			return w
		}
	}
	if fields := strings.Fields(n); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
