package dataset

import (
	"strings"
	"unicode"
)

// Tokenize splits one line of the dialect into its fields.
// It never fails: a quoted field that is not closed cleanly is re-read as
// a bare field.
func Tokenize(line string) []string {
	s := scanner{src: []rune(line)}
	fields := make([]string, 0, 8)
	afterComma := false

	for {
		if s.restIsSpace() {
			if afterComma {
				fields = append(fields, "")
			}
			return fields
		}

		s.skipSpace()
		field, more := s.field()
		fields = append(fields, field)
		if !more {
			return fields
		}
		afterComma = true
	}
}

type scanner struct {
	src []rune
	pos int
}

func (s *scanner) restIsSpace() bool {
	for _, r := range s.src[s.pos:] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

// field reads one field starting at a non-space rune and consumes the
// separating comma. more reports whether a comma was consumed.
func (s *scanner) field() (string, bool) {
	start := s.pos
	if q := s.src[s.pos]; q == '\'' || q == '"' {
		if body, end, ok := s.quoted(q); ok {
			s.pos = end
			s.skipSpace()
			if s.pos == len(s.src) {
				return body, false
			}
			if s.src[s.pos] == ',' {
				s.pos++
				return body, true
			}
		}
		s.pos = start
	}
	return s.bare()
}

// quoted scans a field enclosed in q. end is the index just past the
// closing quote.
func (s *scanner) quoted(q rune) (string, int, bool) {
	var b strings.Builder
	for i := s.pos + 1; i < len(s.src); i++ {
		r := s.src[i]
		switch {
		case r == '\\' && i+1 < len(s.src):
			writeEscape(&b, s.src[i+1])
			i++
		case r == q:
			return b.String(), i + 1, true
		default:
			b.WriteRune(r)
		}
	}
	return "", 0, false
}

func (s *scanner) bare() (string, bool) {
	end := s.pos
	for end < len(s.src) && s.src[end] != ',' {
		end++
	}
	raw := strings.TrimSpace(string(s.src[s.pos:end]))
	more := end < len(s.src)
	if more {
		end++
	}
	s.pos = end
	return unescape(raw), more
}

func writeEscape(b *strings.Builder, r rune) {
	switch r {
	case '\'', '"':
		b.WriteRune(r)
	case 'n':
		b.WriteByte('\n')
	default:
		b.WriteByte('\\')
		b.WriteRune(r)
	}
}

func unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	src := []rune(raw)
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		if src[i] == '\\' && i+1 < len(src) {
			writeEscape(&b, src[i+1])
			i++
			continue
		}
		b.WriteRune(src[i])
	}
	return b.String()
}

// FormatRow writes fields as one dialect line. Fields that would not
// survive [Tokenize] as bare text are double-quoted.
func FormatRow(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = quoteField(f)
	}
	return strings.Join(parts, ",")
}

func quoteField(f string) string {
	needsQuote := f != strings.TrimSpace(f) ||
		strings.ContainsAny(f, ",'\"\n\\")
	if !needsQuote {
		return f
	}
	f = strings.ReplaceAll(f, `"`, `\"`)
	f = strings.ReplaceAll(f, "\n", `\n`)
	return `"` + f + `"`
}
