package edit

import (
	"errors"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/oakwood/pkg/source"
)

// ErrUnsupportedChange is returned for content change values FromLSP does
// not understand.
var ErrUnsupportedChange = errors.New("unsupported content change")

// FromLSP converts one didChange content change into an edit against the
// document described by lines. A whole-document change replaces everything.
func FromLSP(lines *source.LineIndex, contentLen int, change any) (TextEdit, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return TextEdit{Start: 0, End: contentLen, NewText: c.Text}, nil
	case *protocol.TextDocumentContentChangeEventWhole:
		return TextEdit{Start: 0, End: contentLen, NewText: c.Text}, nil
	case protocol.TextDocumentContentChangeEvent:
		return fromRange(lines, contentLen, c.Range, c.Text)
	case *protocol.TextDocumentContentChangeEvent:
		return fromRange(lines, contentLen, c.Range, c.Text)
	default:
		return TextEdit{}, fmt.Errorf("%w: %T", ErrUnsupportedChange, change)
	}
}

func fromRange(lines *source.LineIndex, contentLen int, rng *protocol.Range, text string) (TextEdit, error) {
	if rng == nil {
		return TextEdit{Start: 0, End: contentLen, NewText: text}, nil
	}

	start, ok := lines.OffsetOfLSP(rng.Start)
	if !ok {
		return TextEdit{}, &ValidationError{Message: fmt.Sprintf("start line %d out of range", rng.Start.Line)}
	}

	end, ok := lines.OffsetOfLSP(rng.End)
	if !ok {
		return TextEdit{}, &ValidationError{Message: fmt.Sprintf("end line %d out of range", rng.End.Line)}
	}

	edit := TextEdit{Start: start, End: end, NewText: text}
	if end < start {
		return TextEdit{}, &ValidationError{Edit: edit, Message: "end offset is before start offset"}
	}

	return edit, nil
}
