package diag

import (
	"fmt"
	"strings"
)

// IO wraps a failure to read a source.
func IO(path string, err error) *Error {
	return &Error{
		Kind:    KindIO,
		Message: "cannot read " + path,
		Args:    []Arg{{Key: "path", Value: path}},
		Err:     err,
	}
}

// Syntax reports a general syntax problem over [start, end).
func Syntax(start, end int, message string) *Error {
	return &Error{
		Kind:    KindSyntax,
		Offset:  start,
		End:     end,
		Message: message,
		Args:    []Arg{{Key: "message", Value: message}},
	}
}

// UnexpectedCharacter reports a character no lexer rule accepted.
func UnexpectedCharacter(offset int, char rune, width int) *Error {
	return &Error{
		Kind:    KindUnexpectedCharacter,
		Offset:  offset,
		End:     offset + width,
		Message: fmt.Sprintf("unexpected character %q", char),
		Args:    []Arg{{Key: "character", Value: char}},
	}
}

// UnexpectedToken reports a token the grammar could not place.
func UnexpectedToken(start, end int, token string) *Error {
	return &Error{
		Kind:    KindUnexpectedToken,
		Offset:  start,
		End:     end,
		Message: "unexpected " + token,
		Args:    []Arg{{Key: "token", Value: token}},
	}
}

// UnexpectedEOF reports input that ended inside a construct.
func UnexpectedEOF(offset int) *Error {
	return &Error{
		Kind:    KindUnexpectedEOF,
		Offset:  offset,
		End:     offset,
		Message: "unexpected end of input",
	}
}

// ExpectedToken reports a missing token.
func ExpectedToken(start, end int, expected, found string) *Error {
	return &Error{
		Kind:    KindExpectedToken,
		Offset:  start,
		End:     end,
		Message: fmt.Sprintf("expected %s, found %s", expected, found),
		Args:    []Arg{{Key: "expected", Value: expected}, {Key: "found", Value: found}},
	}
}

// ExpectedName reports a missing identifier such as a binding name.
func ExpectedName(start, end int, what string) *Error {
	return &Error{
		Kind:    KindExpectedName,
		Offset:  start,
		End:     end,
		Message: "expected " + what + " name",
		Args:    []Arg{{Key: "name_kind", Value: what}},
	}
}

// TrailingCommaNotAllowed reports a separator before a closing delimiter.
func TrailingCommaNotAllowed(offset int) *Error {
	return &Error{
		Kind:    KindTrailingCommaNotAllowed,
		Offset:  offset,
		End:     offset + 1,
		Message: "trailing comma not allowed",
	}
}

// Custom reports a plugin-defined problem.
func Custom(start, end int, format string, args ...any) *Error {
	message := fmt.Sprintf(format, args...)

	return &Error{
		Kind:    KindCustom,
		Offset:  start,
		End:     end,
		Message: message,
		Args:    []Arg{{Key: "message", Value: message}},
	}
}

// Summary renders diagnostics one per line, for logs and tests.
func Summary(errs []*Error) string {
	var sb strings.Builder

	for i, err := range errs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d..%d %s: %s", err.Offset, err.End, err.Key(), err.Message)
	}

	return sb.String()
}
