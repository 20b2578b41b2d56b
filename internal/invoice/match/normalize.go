package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSeparators = regexp.MustCompile(`[-_]`)
	reNotAllowed = regexp.MustCompile(`[^a-z0-9 ]+`)
)

// Fold lowercases s and strips diacritics ("Óleo" -> "oleo"), keeping
// punctuation and spacing intact. Rule matching runs on folded text.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Normalize canonicalizes a product name for comparison only:
// "Óleo-Lubrificante  5W30!" -> "oleo lubrificante 5w30".
func Normalize(name string) string {
	out := Fold(name)
	out = reSeparators.ReplaceAllString(out, " ")
	out = collapseSpaces(out)
	out = reNotAllowed.ReplaceAllString(out, "")
	// removing characters may leave double spaces behind ("a ! b")
	return collapseSpaces(out)
}

// collapseSpaces схлопывает пробелы и обрезает края.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Words returns the normalized words of s longer than two characters, without
// duplicates, in order of first appearance.
func Words(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
