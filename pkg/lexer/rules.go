package lexer

import (
	"sort"
	"unicode"

	"github.com/yaklabco/oakwood/pkg/diag"
	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Whitespace matches a run of horizontal whitespace.
func Whitespace(kind syntax.Kind) Rule {
	return func(s *State) bool {
		start := s.Offset()
		if s.AdvanceWhile(isHorizontalSpace) == 0 {
			return false
		}
		s.Emit(kind, start)

		return true
	}
}

// Newline matches one line terminator: "\n", "\r\n" or a lone "\r".
func Newline(kind syntax.Kind) Rule {
	return func(s *State) bool {
		start := s.Offset()
		if !s.AdvanceIf("\r\n") && !s.AdvanceIf("\n") && !s.AdvanceIf("\r") {
			return false
		}
		s.Emit(kind, start)

		return true
	}
}

// LineComment matches from any of the markers to the end of the line,
// excluding the terminator.
func LineComment(kind syntax.Kind, markers ...string) Rule {
	return func(s *State) bool {
		start := s.Offset()
		for _, marker := range markers {
			if s.AdvanceIf(marker) {
				s.AdvanceUntilAny("\r\n")
				s.Emit(kind, start)

				return true
			}
		}

		return false
	}
}

// BlockComment matches open ... close. With nested set, inner open markers
// must be balanced. An unterminated comment runs to the end of the region.
func BlockComment(kind syntax.Kind, open, closer string, nested bool) Rule {
	return func(s *State) bool {
		start := s.Offset()
		if !s.AdvanceIf(open) {
			return false
		}

		depth := 1
		for depth > 0 && !s.AtEnd() {
			switch {
			case s.AdvanceIf(closer):
				depth--
			case nested && s.AdvanceIf(open):
				depth++
			default:
				s.Next()
			}
		}

		if depth > 0 {
			s.Report(diag.Syntax(start, s.Offset(), "unterminated block comment"))
		}
		s.Emit(kind, start)

		return true
	}
}

// Identifier matches a Unicode identifier. Words found in keywords are
// emitted with the keyword's kind instead.
func Identifier(kind syntax.Kind, keywords map[string]syntax.Kind) Rule {
	return func(s *State) bool {
		start := s.Offset()
		if !IsIdentStart(s.Peek()) {
			return false
		}
		s.Next()
		s.AdvanceWhile(IsIdentContinue)

		if kw, ok := keywords[s.Slice(start, s.Offset())]; ok {
			s.Emit(kw, start)
		} else {
			s.Emit(kind, start)
		}

		return true
	}
}

// Number matches decimal, hexadecimal, octal and binary integers, and decimal
// floats with optional fraction and exponent. Underscores may separate digits.
func Number(intKind, floatKind syntax.Kind) Rule {
	return func(s *State) bool {
		start := s.Offset()
		if !isDigit(s.Peek()) {
			return false
		}

		if s.PeekByte(0) == '0' {
			var digits func(rune) bool
			switch s.PeekByte(1) {
			case 'x', 'X':
				digits = isHexDigit
			case 'o', 'O':
				digits = isOctDigit
			case 'b', 'B':
				digits = isBinDigit
			}

			if digits != nil {
				s.Advance(2)
				if s.AdvanceWhile(underscored(digits)) == 0 {
					s.Report(diag.Syntax(start, s.Offset(), "missing digits after radix prefix"))
				}
				s.Emit(intKind, start)

				return true
			}
		}

		kind := intKind
		s.AdvanceWhile(underscored(isDigit))

		if s.PeekByte(0) == '.' && isDigit(rune(s.PeekByte(1))) {
			kind = floatKind
			s.Advance(1)
			s.AdvanceWhile(underscored(isDigit))
		}

		if b := s.PeekByte(0); b == 'e' || b == 'E' {
			next := 1
			if sign := s.PeekByte(1); sign == '+' || sign == '-' {
				next = 2
			}
			if isDigit(rune(s.PeekByte(next))) {
				kind = floatKind
				s.Advance(next)
				s.AdvanceWhile(underscored(isDigit))
			}
		}

		s.Emit(kind, start)

		return true
	}
}

// QuotedString matches quote ... quote with escape handling. Without
// multiline set, a line terminator ends an unterminated string.
func QuotedString(kind syntax.Kind, quote, escape rune, multiline bool) Rule {
	return func(s *State) bool {
		start := s.Offset()
		if s.Peek() != quote {
			return false
		}
		s.Next()

		for {
			r := s.Peek()
			switch {
			case r == EOFRune, !multiline && (r == '\n' || r == '\r'):
				s.Report(diag.Syntax(start, s.Offset(), "unterminated string literal"))
				s.Emit(kind, start)

				return true
			case r == escape:
				s.Next()
				if s.Peek() != EOFRune {
					s.Next()
				}
			case r == quote:
				s.Next()
				s.Emit(kind, start)

				return true
			default:
				s.Next()
			}
		}
	}
}

// Operators matches the longest operator spelling in table.
func Operators(table map[string]syntax.Kind) Rule {
	spellings := make([]string, 0, len(table))
	for spelling := range table {
		spellings = append(spellings, spelling)
	}
	sort.Slice(spellings, func(i, j int) bool {
		if len(spellings[i]) != len(spellings[j]) {
			return len(spellings[i]) > len(spellings[j])
		}

		return spellings[i] < spellings[j]
	})

	return func(s *State) bool {
		start := s.Offset()
		for _, spelling := range spellings {
			if s.AdvanceIf(spelling) {
				s.Emit(table[spelling], start)

				return true
			}
		}

		return false
	}
}

// Delimiters matches single-character punctuation.
func Delimiters(table map[rune]syntax.Kind) Rule {
	return func(s *State) bool {
		kind, ok := table[s.Peek()]
		if !ok {
			return false
		}

		start := s.Offset()
		s.Next()
		s.Emit(kind, start)

		return true
	}
}

// IsIdentStart reports whether r may begin an identifier.
func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentContinue reports whether r may continue an identifier.
func IsIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHorizontalSpace(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

func isDigit(r rune) bool    { return r >= '0' && r <= '9' }
func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }
func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func underscored(pred func(rune) bool) func(rune) bool {
	return func(r rune) bool { return r == '_' || pred(r) }
}
