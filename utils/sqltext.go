package utils

import (
	"fmt"
	"strings"
)

// EscapeSQL doubles single quotes for embedding in a single-quoted SQL literal.
func EscapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuoteLiteral renders s as a single-quoted SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + EscapeSQL(s) + "'"
}

// UnquoteLiteral reverses QuoteLiteral.
func UnquoteLiteral(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '\'' || lit[len(lit)-1] != '\'' {
		return "", fmt.Errorf("not a quoted literal: %s", lit)
	}
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\'' {
			b.WriteByte(body[i])
			continue
		}
		if i+1 >= len(body) || body[i+1] != '\'' {
			return "", fmt.Errorf("unescaped quote at offset %d in %s", i+1, lit)
		}
		b.WriteByte('\'')
		i++
	}
	return b.String(), nil
}
