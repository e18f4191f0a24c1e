package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza para busca: sem acentos, minúsculo, espaços colapsados.
// "São José" e "sao  jose" viram a mesma chave.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Matcher testa se algum dos campos contém o termo (já normalizado).
type Matcher struct {
	term string
}

func NewMatcher(query string) Matcher {
	return Matcher{term: Fold(query)}
}

// Empty: termo em branco casa com tudo.
func (m Matcher) Empty() bool {
	return m.term == ""
}

func (m Matcher) Match(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.term) {
			return true
		}
	}
	return false
}
