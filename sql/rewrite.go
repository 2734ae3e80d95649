package sql

import (
	"fmt"
	"strings"

	"github.com/mallard-db/mallard/core"
)

// ExpandMarkers rewrites a statement for drivers that only accept
// positional placeholders: every named marker becomes "?" and the bound
// values are returned in marker order. Positional markers consume the
// statement's positional bindings in order. Marker tokens inside quoted
// literals are left alone.
func ExpandMarkers(sqlText string, bindings *core.Bindings) (string, []any, error) {
	var out strings.Builder
	var args []any

	positional := bindings.Positional()

	i := 0
	for i < len(sqlText) {
		ch := sqlText[i]
		switch {
		case ch == '\'' || ch == '"':
			end := skipQuotedAt(sqlText, i, ch)
			out.WriteString(sqlText[i:end])
			i = end
		case ch == '?':
			if len(positional) == 0 {
				return "", nil, fmt.Errorf("%w: positional marker without value", ErrUnresolvedBinding)
			}
			args = append(args, positional[0])
			positional = positional[1:]
			out.WriteByte('?')
			i++
		case ch == ':' && i+1 < len(sqlText) && isMarkerStart(sqlText[i+1]):
			end := i + 1
			for end < len(sqlText) && isWordChar(sqlText[end]) {
				end++
			}
			marker := sqlText[i:end]
			value, ok := bindings.Lookup(marker)
			if !ok {
				return "", nil, fmt.Errorf("%w: %s", ErrUnresolvedBinding, marker)
			}
			args = append(args, value)
			out.WriteByte('?')
			i = end
		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String(), args, nil
}

func isMarkerStart(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func skipQuotedAt(s string, start int, quote byte) int {
	i := start + 1
	for i < len(s) {
		if s[i] == quote {
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return i
}
