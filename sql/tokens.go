package sql

// scanner walks SQL text byte by byte, skipping the content of quoted
// string literals so keyword checks cannot be fooled by values like
// 'where is this'.
type scanner struct {
	sql          string
	position     int
	readPosition int
	ch           byte
}

func newScanner(sqlText string) *scanner {
	s := &scanner{sql: sqlText}
	s.readChar()
	return s
}

func (s *scanner) readChar() {
	if s.readPosition >= len(s.sql) {
		s.ch = 0
	} else {
		s.ch = s.sql[s.readPosition]
	}
	s.position = s.readPosition
	s.readPosition++
}

// nextWord returns the next bare word, lowercased, or "" at end of input.
// Quoted literals ('…' with '' escapes, "…" identifiers) are skipped whole.
func (s *scanner) nextWord() string {
	for {
		switch {
		case s.ch == 0:
			return ""
		case s.ch == '\'':
			s.skipQuoted('\'')
		case s.ch == '"':
			s.skipQuoted('"')
		case isWordChar(s.ch):
			return s.readWord()
		default:
			s.readChar()
		}
	}
}

func (s *scanner) skipQuoted(quote byte) {
	s.readChar() // opening quote
	for s.ch != 0 {
		if s.ch == quote {
			s.readChar()
			// doubled quote is an escape, keep going
			if s.ch != quote {
				return
			}
		}
		s.readChar()
	}
}

func (s *scanner) readWord() string {
	position := s.position
	for isWordChar(s.ch) {
		s.readChar()
	}
	return toLower(s.sql[position:s.position])
}

func isWordChar(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func toLower(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if 'A' <= ch && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

// words returns all bare words of a statement, lowercased, with quoted
// literal content excluded.
func words(sqlText string) []string {
	s := newScanner(sqlText)
	var out []string
	for {
		w := s.nextWord()
		if w == "" {
			return out
		}
		out = append(out, w)
	}
}
