package sqlite

import (
	"regexp"
	"strings"
	"unicode"
)

// EmptyQuery is the FTS5 expression that matches no documents.
const EmptyQuery = `""`

var ftsSpecialRe = regexp.MustCompile(`(["^$()\[\]{}|+])`)

// BuildQuery converts a free-text query into an FTS5 MATCH expression.
//
// Every whitespace-separated term becomes a quoted prefix phrase, so
// "auth" also matches "authentication". A trailing "*" on a term is
// accepted as an explicit prefix marker. Terms are combined with OR:
// documents matching any term are returned and ranking decides the order.
// Terms without letters or digits are dropped since they produce no
// tokens. If nothing remains, EmptyQuery is returned.
func BuildQuery(raw string) string {
	var terms []string
	for _, term := range strings.Fields(raw) {
		body := ftsSpecialRe.ReplaceAllString(term, `\${1}`)
		body = strings.TrimRight(body, "*")
		if !hasToken(body) {
			continue
		}
		terms = append(terms, quoteTerm(body)+"*")
	}

	if len(terms) == 0 {
		return EmptyQuery
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// IsEmptyQuery reports whether expr matches no documents.
func IsEmptyQuery(expr string) bool {
	return expr == EmptyQuery
}

// quoteTerm wraps s in double quotes. Embedded quotes are doubled, which is
// the only escape FTS5 recognizes inside a string.
func quoteTerm(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// hasToken reports whether the unicode61 tokenizer would find a token in s.
func hasToken(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
