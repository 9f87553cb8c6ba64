package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/source"
)

func TestFromLSP(t *testing.T) {
	t.Parallel()

	text := []byte("let x\nlet y\n")
	lines := source.NewLineIndex(text)

	t.Run("ranged change", func(t *testing.T) {
		t.Parallel()

		got, err := edit.FromLSP(lines, len(text), protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 1, Character: 4},
				End:   protocol.Position{Line: 1, Character: 5},
			},
			Text: "total",
		})
		require.NoError(t, err)
		assert.Equal(t, edit.TextEdit{Start: 10, End: 11, NewText: "total"}, got)
		assert.Equal(t, "let x\nlet total\n", string(edit.Apply(text, []edit.TextEdit{got})))
	})

	t.Run("whole document", func(t *testing.T) {
		t.Parallel()

		got, err := edit.FromLSP(lines, len(text), protocol.TextDocumentContentChangeEventWhole{Text: "{}"})
		require.NoError(t, err)
		assert.Equal(t, edit.TextEdit{Start: 0, End: len(text), NewText: "{}"}, got)
	})

	t.Run("line out of range", func(t *testing.T) {
		t.Parallel()

		_, err := edit.FromLSP(lines, len(text), &protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 9, Character: 0},
				End:   protocol.Position{Line: 9, Character: 0},
			},
		})
		var verr *edit.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := edit.FromLSP(lines, len(text), 42)
		require.ErrorIs(t, err, edit.ErrUnsupportedChange)
	})
}
