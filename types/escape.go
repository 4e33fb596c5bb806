package types

import "strings"

// QuoteStr wraps s in double quotes, escaping backslashes and double quotes
// so the result is always a valid query-language string literal.
func QuoteStr(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
