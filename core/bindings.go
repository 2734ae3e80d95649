package core

import (
	"fmt"
	"strings"
)

// PositionalMarker is the placeholder token for positionally bound values.
const PositionalMarker = "?"

// Binding is a single marker/value pair in statement order.
type Binding struct {
	Marker string
	Value  any
}

// Bindings is the ordered marker->value map built while constructing one
// statement. Positional entries all use PositionalMarker and are consumed
// in order; named entries are unique within a statement. A Bindings value
// belongs to the statement being built and is discarded after execution.
type Bindings struct {
	entries []Binding
	named   map[string]int
}

// Add appends a binding. Adding a named marker twice overwrites the
// previous value in place, keeping the original position.
func (b *Bindings) Add(marker string, value any) {
	if marker != PositionalMarker {
		if i, ok := b.named[marker]; ok {
			b.entries[i].Value = value
			return
		}
		if b.named == nil {
			b.named = make(map[string]int)
		}
		b.named[marker] = len(b.entries)
	}
	b.entries = append(b.entries, Binding{Marker: marker, Value: value})
}

// Lookup returns the value bound to a named marker.
func (b *Bindings) Lookup(marker string) (any, bool) {
	i, ok := b.named[marker]
	if !ok {
		return nil, false
	}
	return b.entries[i].Value, true
}

// Entries returns all bindings in statement order.
func (b *Bindings) Entries() []Binding {
	return b.entries
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	return len(b.entries)
}

// Positional returns the values of positional entries in order.
func (b *Bindings) Positional() []any {
	var values []any
	for _, e := range b.entries {
		if e.Marker == PositionalMarker {
			values = append(values, e.Value)
		}
	}
	return values
}

// String renders the bindings for diagnostics, e.g. "{?=1, :name=mango}".
func (b *Bindings) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range b.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", e.Marker, e.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}
