// Package diag defines the diagnostics produced while lexing and parsing.
//
// Syntax problems never abort a parse. They are collected as *Error values
// next to a tree that still covers every byte of the input. Only I/O failures
// are fatal.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/oakwood/pkg/source"
)

// Kind classifies a diagnostic.
type Kind uint8

// Diagnostic kinds.
const (
	KindIO Kind = iota
	KindSyntax
	KindUnexpectedCharacter
	KindUnexpectedToken
	KindUnexpectedEOF
	KindExpectedToken
	KindExpectedName
	KindTrailingCommaNotAllowed
	KindCustom
)

var kindKeys = [...]string{
	KindIO:                      "error.io",
	KindSyntax:                  "error.syntax",
	KindUnexpectedCharacter:     "error.unexpected_character",
	KindUnexpectedToken:         "error.unexpected_token",
	KindUnexpectedEOF:           "error.unexpected_eof",
	KindExpectedToken:           "error.expected_token",
	KindExpectedName:            "error.expected_name",
	KindTrailingCommaNotAllowed: "error.trailing_comma_not_allowed",
	KindCustom:                  "error.custom",
}

// Key returns the stable message key for the kind.
func (k Kind) Key() string {
	if int(k) < len(kindKeys) {
		return kindKeys[k]
	}

	return "error.unknown"
}

func (k Kind) String() string {
	return strings.TrimPrefix(k.Key(), "error.")
}

// Arg is one ordered message argument.
type Arg struct {
	Key   string
	Value any
}

// Error is a single diagnostic. It implements error so that fatal conditions
// can travel through ordinary error returns, and it matches the sentinel of
// its kind under errors.Is.
type Error struct {
	Kind Kind

	// Offset is the byte offset the diagnostic points at.
	Offset int

	// End is the exclusive end of the offending span. It is never below Offset.
	End int

	// Message is the rendered English message.
	Message string

	// Args carries the message parameters in a stable order for localisation.
	Args []Arg

	// Suggestion is an optional replacement proposed to the user.
	Suggestion string

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is. They match any diagnostic of the same kind.
//
//nolint:gochecknoglobals // sentinel errors
var (
	ErrIO                      = &Error{Kind: KindIO}
	ErrSyntax                  = &Error{Kind: KindSyntax}
	ErrUnexpectedCharacter     = &Error{Kind: KindUnexpectedCharacter}
	ErrUnexpectedToken         = &Error{Kind: KindUnexpectedToken}
	ErrUnexpectedEOF           = &Error{Kind: KindUnexpectedEOF}
	ErrExpectedToken           = &Error{Kind: KindExpectedToken}
	ErrExpectedName            = &Error{Kind: KindExpectedName}
	ErrTrailingCommaNotAllowed = &Error{Kind: KindTrailingCommaNotAllowed}
	ErrCustom                  = &Error{Kind: KindCustom}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}

	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, e.Suggestion)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return fmt.Sprintf("%s at offset %d", msg, e.Offset)
}

// Key returns the stable message key.
func (e *Error) Key() string {
	return e.Kind.Key()
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return other.Kind == e.Kind
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Range returns the byte span the diagnostic covers.
func (e *Error) Range() source.Range {
	return source.Range{Start: e.Offset, End: max(e.End, e.Offset)}
}

// Resolve converts the diagnostic's span to line/column form.
func (e *Error) Resolve(lines *source.LineIndex) source.SourcePosition {
	return lines.SourcePosition(e.Range())
}

// Arg returns the value of a named argument.
func (e *Error) Arg(key string) (any, bool) {
	for _, arg := range e.Args {
		if arg.Key == key {
			return arg.Value, true
		}
	}

	return nil, false
}

// Shift returns a copy moved by delta bytes.
func (e *Error) Shift(delta int) *Error {
	shifted := *e
	shifted.Offset += delta
	shifted.End += delta

	return &shifted
}

// IsFatal reports whether the diagnostic must abort processing.
func (e *Error) IsFatal() bool {
	return e.Kind == KindIO
}
