// Package search normaliza texto para búsquedas sin distinguir mayúsculas ni acentos
// ("Montaña" coincide con "montana").
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold devuelve s sin marcas diacríticas y en forma de comparación sin mayúsculas.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(out)
}

// Contains indica si query aparece en text. Una consulta vacía coincide siempre.
func Contains(text, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return strings.Contains(Fold(text), Fold(q))
}

// AnyContains indica si query aparece en alguno de los textos.
func AnyContains(query string, texts ...string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	fq := Fold(q)
	for _, t := range texts {
		if strings.Contains(Fold(t), fq) {
			return true
		}
	}
	return false
}
