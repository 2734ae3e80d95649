package sql

import (
	"fmt"
	"strings"

	"github.com/mallard-db/mallard/core"
)

// Condition is one WHERE predicate after binding resolution: the original
// column and operator text plus the marker standing in for the value.
type Condition struct {
	Column   string
	Operator string
	Marker   string
}

func (c Condition) String() string {
	return c.Column + " " + c.Operator + " " + c.Marker
}

// WhereSpec is a WHERE specification: either a raw string to be split on
// WHERE/AND, or an explicit list of condition fragments.
type WhereSpec struct {
	fragments []string
}

// Where builds a specification from a raw string, splitting it into
// fragments on whole-word, case-insensitive WHERE and AND.
func Where(raw string) WhereSpec {
	return WhereSpec{fragments: SplitConditions(raw)}
}

// WhereAll builds a specification from pre-split condition fragments,
// preserving their order.
func WhereAll(conditions ...string) WhereSpec {
	fragments := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if strings.TrimSpace(c) != "" {
			fragments = append(fragments, strings.TrimSpace(c))
		}
	}
	return WhereSpec{fragments: fragments}
}

// Empty reports whether the specification carries no conditions.
func (w WhereSpec) Empty() bool {
	return len(w.fragments) == 0
}

// SplitConditions splits a raw WHERE specification on whole-word,
// case-insensitive WHERE and AND tokens outside quoted literals. Fragments
// are trimmed and empty fragments discarded. OR, parentheses, IN, BETWEEN
// and LIKE are not supported by this splitter.
func SplitConditions(raw string) []string {
	var fragments []string
	s := newScanner(raw)
	start := 0
	for {
		// position of the next word, before it is consumed
		for s.ch != 0 && !isWordChar(s.ch) {
			if s.ch == '\'' {
				s.skipQuoted('\'')
				continue
			}
			if s.ch == '"' {
				s.skipQuoted('"')
				continue
			}
			s.readChar()
		}
		if s.ch == 0 {
			break
		}
		wordStart := s.position
		w := s.readWord()
		if w == "where" || w == "and" {
			if f := strings.TrimSpace(raw[start:wordStart]); f != "" {
				fragments = append(fragments, f)
			}
			start = s.position
		}
	}
	if f := strings.TrimSpace(raw[start:]); f != "" {
		fragments = append(fragments, f)
	}
	return fragments
}

// ParseConditions decomposes each fragment into column, operator and value
// expression, resolves the value through the shared supply with base
// "where_<column>", and returns the conditions in original order. A
// fragment that does not decompose fails with ErrMalformedCondition.
func ParseConditions(spec WhereSpec, supply *Supply, out *core.Bindings) ([]Condition, error) {
	var conditions []Condition
	for _, fragment := range spec.fragments {
		column, operator, value, ok := splitCondition(fragment)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCondition, fragment)
		}
		marker, err := supply.Resolve(literalValue(value), "where_"+column, out)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, Condition{
			Column:   column,
			Operator: operator,
			Marker:   marker,
		})
	}
	return conditions, nil
}

// JoinConditions renders parsed conditions back into a WHERE clause,
// original order preserved, or "" when there are none.
func JoinConditions(conditions []Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = c.String()
	}
	return "WHERE " + strings.Join(parts, " AND ")
}

// splitCondition matches identifier, comparison operator, trailing value
// expression. Supported operators are =, <, >, ! and their compounds
// (!=, <>, <=, >=).
func splitCondition(fragment string) (column, operator, value string, ok bool) {
	rest := strings.TrimSpace(fragment)

	i := 0
	for i < len(rest) && (isWordChar(rest[i]) || rest[i] == '.') {
		i++
	}
	column = rest[:i]
	if column == "" {
		return "", "", "", false
	}

	rest = strings.TrimLeft(rest[i:], " \t")
	i = 0
	for i < len(rest) && isOperatorChar(rest[i]) {
		i++
	}
	operator = rest[:i]
	switch operator {
	case "=", "<", ">", "!", "!=", "<>", "<=", ">=":
	default:
		return "", "", "", false
	}

	value = strings.TrimSpace(rest[i:])
	if value == "" {
		return "", "", "", false
	}
	return column, operator, value, true
}

func isOperatorChar(ch byte) bool {
	return ch == '=' || ch == '!' || ch == '<' || ch == '>'
}

// literalValue strips the quotes from a single-quoted value expression so
// the bound value is the string itself, unescaping doubled quotes. Marker
// tokens and bare literals pass through untouched.
func literalValue(expr string) any {
	if len(expr) >= 2 && expr[0] == '\'' && expr[len(expr)-1] == '\'' {
		return strings.ReplaceAll(expr[1:len(expr)-1], "''", "'")
	}
	return expr
}
