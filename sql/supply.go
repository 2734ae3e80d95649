package sql

import (
	"fmt"
	"sort"

	"github.com/mallard-db/mallard/core"
)

// Supply is the binding supply available while building one statement: a
// FIFO queue of positional values plus a named lookup map. Both phases of
// an UPDATE (SET, then WHERE) consume the same supply, left to right, so
// positional and named styles can be mixed within one statement.
type Supply struct {
	positional []any
	named      core.Args
}

// NewSupply builds a supply from caller arguments.
func NewSupply(positional []any, named core.Args) *Supply {
	return &Supply{positional: positional, named: named}
}

// Empty reports whether the caller supplied no bindings at all.
func (s *Supply) Empty() bool {
	return s == nil || (len(s.positional) == 0 && len(s.named) == 0)
}

// Resolve turns one value token into a marker and records its bound value.
//
//   - a named marker token (":name") is looked up in the named bindings and
//     reused as-is;
//   - a bare positional token ("?") pops the next unconsumed positional
//     value;
//   - anything else is a literal: a fresh named marker is synthesized from
//     base and bound directly to the literal.
//
// The value-list phase passes the column name as base; the WHERE phase
// passes "where_<column>", so the two namespaces never collide. Bases are
// sanitized to marker-safe characters, and a base already bound in out
// gets a numeric suffix so each literal keeps its own value.
func (s *Supply) Resolve(value any, base string, out *core.Bindings) (string, error) {
	if token, ok := value.(string); ok {
		if isNamedMarker(token) {
			bound, ok := s.named[token]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUnresolvedBinding, token)
			}
			out.Add(token, bound)
			return token, nil
		}
		if token == core.PositionalMarker {
			bound, err := s.pop()
			if err != nil {
				return "", err
			}
			out.Add(core.PositionalMarker, bound)
			return core.PositionalMarker, nil
		}
	}

	marker := synthesizeMarker(base, out)
	out.Add(marker, value)
	return marker, nil
}

// synthesizeMarker builds a fresh named marker from base: non-word
// characters (a dotted column, say) become underscores, and when the
// marker is already bound the next free "_<n>" variant is used instead.
func synthesizeMarker(base string, out *core.Bindings) string {
	clean := make([]byte, len(base))
	for i := 0; i < len(base); i++ {
		if isWordChar(base[i]) {
			clean[i] = base[i]
		} else {
			clean[i] = '_'
		}
	}

	marker := ":" + string(clean)
	if _, taken := out.Lookup(marker); !taken {
		return marker
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", marker, n)
		if _, taken := out.Lookup(candidate); !taken {
			return candidate
		}
	}
}

func (s *Supply) pop() (any, error) {
	if len(s.positional) == 0 {
		return nil, fmt.Errorf("%w: positional supply exhausted", ErrUnresolvedBinding)
	}
	v := s.positional[0]
	s.positional = s.positional[1:]
	return v, nil
}

// Passthrough materializes the caller's bindings unchanged: positional
// values in order, then named markers in sorted order for determinism.
func (s *Supply) Passthrough() core.Bindings {
	var out core.Bindings
	for _, v := range s.positional {
		out.Add(core.PositionalMarker, v)
	}
	markers := make([]string, 0, len(s.named))
	for m := range s.named {
		markers = append(markers, m)
	}
	sort.Strings(markers)
	for _, m := range markers {
		out.Add(m, s.named[m])
	}
	return out
}

// isNamedMarker reports whether a token is a colon-prefixed identifier:
// a letter or underscore after the sigil, then letters, digits or
// underscores.
func isNamedMarker(token string) bool {
	if len(token) < 2 || token[0] != ':' {
		return false
	}
	for i := 1; i < len(token); i++ {
		ch := token[i]
		if isDigit(ch) && i > 1 {
			continue
		}
		if ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' {
			continue
		}
		return false
	}
	return true
}
