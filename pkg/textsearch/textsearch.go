// Package textsearch búsqueda por subcadena sin distinguir mayúsculas ni tildes
// ("pistón" encuentra "PISTONES").
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize quita marcas diacríticas, pliega mayúsculas y recorta espacios.
func Normalize(s string) string {
	// transform.Chain tiene estado: uno nuevo por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(cases.Fold().String(out))
}

// Matcher consulta normalizada una sola vez y aplicada a muchos textos.
type Matcher struct {
	needle string
}

// NewMatcher prepara la consulta q. Una consulta vacía coincide con todo.
func NewMatcher(q string) Matcher {
	return Matcher{needle: Normalize(q)}
}

// Empty informa si la consulta está vacía.
func (m Matcher) Empty() bool { return m.needle == "" }

// Match informa si text contiene la consulta.
func (m Matcher) Match(text string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(Normalize(text), m.needle)
}

// Contains atajo de NewMatcher(q).Match(text).
func Contains(text, q string) bool {
	return NewMatcher(q).Match(text)
}
