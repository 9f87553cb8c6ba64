package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/oakwood/pkg/source"
)

func TestLineIndex_LineAt(t *testing.T) {
	t.Parallel()

	idx := source.NewLineIndex([]byte("ab\r\ncd\n\nef"))

	tests := []struct {
		name         string
		offset       int
		expectedLine int
		expectedCol  int
	}{
		{"first byte", 0, 1, 1},
		{"carriage return", 2, 1, 3},
		{"second line", 4, 2, 1},
		{"empty line", 7, 3, 1},
		{"last line", 9, 4, 2},
		{"end of text", 10, 4, 3},
		{"past end clamps", 99, 4, 3},
		{"negative", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, col := idx.LineAt(tt.offset)
			assert.Equal(t, tt.expectedLine, line)
			assert.Equal(t, tt.expectedCol, col)
		})
	}
}

func TestLineIndex_OffsetRoundTrip(t *testing.T) {
	t.Parallel()

	text := []byte("let x = 1\nlet y = x + 2\n")
	idx := source.NewLineIndex(text)

	for offset := range len(text) + 1 {
		line, col := idx.LineAt(offset)
		got, ok := idx.Offset(line, col)
		require.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, got)
	}

	_, ok := idx.Offset(0, 1)
	assert.False(t, ok)
	_, ok = idx.Offset(1, 0)
	assert.False(t, ok)
}

func TestLineIndex_LineContent(t *testing.T) {
	t.Parallel()

	idx := source.NewLineIndex([]byte("one\r\ntwo\nthree"))

	assert.Equal(t, 3, idx.Count())
	assert.Equal(t, "one", string(idx.LineContent(1)))
	assert.Equal(t, "two", string(idx.LineContent(2)))
	assert.Equal(t, "three", string(idx.LineContent(3)))
	assert.Nil(t, idx.LineContent(4))
}

func TestLineIndex_LSP(t *testing.T) {
	t.Parallel()

	// "é" is two bytes and one UTF-16 unit, "😀" is four bytes and two units.
	text := []byte("aé😀b\nx")
	idx := source.NewLineIndex(text)

	tests := []struct {
		name     string
		offset   int
		expected protocol.Position
	}{
		{"start", 0, protocol.Position{Line: 0, Character: 0}},
		{"after two byte rune", 3, protocol.Position{Line: 0, Character: 2}},
		{"after surrogate pair", 7, protocol.Position{Line: 0, Character: 4}},
		{"second line", 9, protocol.Position{Line: 1, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pos := idx.LSPPosition(tt.offset)
			assert.Equal(t, tt.expected, pos)

			back, ok := idx.OffsetOfLSP(pos)
			require.True(t, ok)
			assert.Equal(t, tt.offset, back)
		})
	}

	r := idx.LSPRange(source.Range{Start: 1, End: 9})
	assert.Equal(t, protocol.UInteger(0), r.Start.Line)
	assert.Equal(t, protocol.UInteger(1), r.End.Line)

	_, ok := idx.OffsetOfLSP(protocol.Position{Line: 5})
	assert.False(t, ok)
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	raw := []byte("hello\nworld")
	buf := source.NewBuffer("greeting.mini", raw)
	raw[0] = 'j'

	assert.Equal(t, "hello\nworld", buf.String(), "buffer must own its text")
	assert.Equal(t, 11, buf.Len())
	assert.Equal(t, "world", buf.Slice(6, 100))
	assert.Empty(t, buf.Slice(5, 2))
	assert.Equal(t, byte('w'), buf.ByteAt(6))
	assert.Equal(t, byte(0), buf.ByteAt(11))
	assert.Equal(t, 2, buf.Lines().Count())

	next := buf.WithText([]byte("bye"))
	assert.Equal(t, 1, next.Version())
	assert.Equal(t, "greeting.mini", next.Path())
	assert.Equal(t, 0, buf.Version())
}

func TestRange_Overlaps(t *testing.T) {
	t.Parallel()

	r := source.Range{Start: 4, End: 8}

	assert.True(t, r.Overlaps(source.Range{Start: 7, End: 10}))
	assert.False(t, r.Overlaps(source.Range{Start: 8, End: 10}))
	assert.True(t, r.Overlaps(source.Range{Start: 5, End: 5}))
	assert.False(t, r.Overlaps(source.Range{Start: 4, End: 4}))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(8))
}
