package fileio

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey нормализует имя колонки: нижний регистр, без диакритики и служебных символов.
func normHeaderKey(s string) string {
	s = strings.ToLower(normalizeCell(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveKey ищет реальный ключ записи по желаемому имени колонки.
// Поддерживает варианты через "|" (например: "descricao|descrição|produto").
// Частичное совпадение только по целым словам: "valor unitario" подходит к "valor",
// но "quantidade" не подходит к "id".
func ResolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	// 1) точное совпадение (как есть)
	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nAlts := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			nAlts = append(nAlts, n)
		}
	}

	// 2) точное по нормализованному
	for _, k := range keys {
		nk := normHeaderKey(k)
		for _, n := range nAlts {
			if nk == n {
				return k
			}
		}
	}

	// 3) частичное: want ⊂ key или key ⊂ want (по словам); побеждает более длинное
	bestKey, bestScore := "", 0
	for _, k := range keys {
		nk := " " + normHeaderKey(k) + " "
		if strings.TrimSpace(nk) == "" {
			continue
		}
		score := 0
		for _, n := range nAlts {
			wn := " " + n + " "
			if strings.Contains(nk, wn) || strings.Contains(wn, nk) {
				score = max(score, len(n))
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}
