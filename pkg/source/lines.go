package source

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LineInfo describes one line of the text.
type LineInfo struct {
	// StartOffset is the first byte of the line.
	StartOffset int

	// NewlineStart is where the line terminator begins ("\n" or "\r\n").
	// It equals EndOffset for a final line without a terminator.
	NewlineStart int

	// EndOffset is one past the terminator.
	EndOffset int
}

// LineIndex maps between byte offsets and line/column positions.
type LineIndex struct {
	text  []byte
	lines []LineInfo
}

// NewLineIndex scans text once. Both LF and CRLF terminators are recognised.
func NewLineIndex(text []byte) *LineIndex {
	idx := &LineIndex{text: text}
	lineStart := 0

	for pos, char := range text {
		if char != '\n' {
			continue
		}

		newlineStart := pos
		if pos > 0 && text[pos-1] == '\r' {
			newlineStart = pos - 1
		}

		idx.lines = append(idx.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    pos + 1,
		})
		lineStart = pos + 1
	}

	idx.lines = append(idx.lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return idx
}

// Count returns the number of lines. Empty text has one empty line.
func (idx *LineIndex) Count() int {
	return len(idx.lines)
}

// Line returns metadata for a 1-based line number.
func (idx *LineIndex) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(idx.lines) {
		return LineInfo{}, false
	}

	return idx.lines[line-1], true
}

// lineIndexOf returns the 0-based line containing offset.
func (idx *LineIndex) lineIndexOf(offset int) int {
	found := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})

	return min(found, len(idx.lines)-1)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes. Offsets past the end clamp to the end of the text,
// negative offsets yield (0, 0).
func (idx *LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}

	offset = min(offset, len(idx.text))
	line := idx.lineIndexOf(offset)

	return line + 1, offset - idx.lines[line].StartOffset + 1
}

// Position converts a byte offset to a Position.
func (idx *LineIndex) Position(offset int) Position {
	line, col := idx.LineAt(offset)

	return Position{Line: line, Column: col}
}

// Offset converts 1-based line and column numbers to a byte offset.
// The column may point one past the last character of the line.
func (idx *LineIndex) Offset(line, col int) (int, bool) {
	info, ok := idx.Line(line)
	if !ok || col < 1 {
		return 0, false
	}

	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns a 1-based line without its terminator.
func (idx *LineIndex) LineContent(line int) []byte {
	info, ok := idx.Line(line)
	if !ok {
		return nil
	}

	return idx.text[info.StartOffset:info.NewlineStart]
}

// SourcePosition converts a byte range to line/column form.
func (idx *LineIndex) SourcePosition(r Range) SourcePosition {
	startLine, startCol := idx.LineAt(r.Start)
	endLine, endCol := idx.LineAt(r.End)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// LSPPosition converts a byte offset to an LSP position: zero-based line and
// a character offset counted in UTF-16 code units.
func (idx *LineIndex) LSPPosition(offset int) protocol.Position {
	offset = max(0, min(offset, len(idx.text)))
	line := idx.lineIndexOf(offset)
	start := idx.lines[line].StartOffset

	units := 0
	for pos := start; pos < offset; {
		r, size := utf8.DecodeRune(idx.text[pos:])
		pos += size
		units += utf16Len(r)
	}

	return protocol.Position{
		Line:      protocol.UInteger(line),  //nolint:gosec // bounded by text length
		Character: protocol.UInteger(units), //nolint:gosec // bounded by text length
	}
}

// LSPRange converts a byte range to an LSP range.
func (idx *LineIndex) LSPRange(r Range) protocol.Range {
	return protocol.Range{
		Start: idx.LSPPosition(r.Start),
		End:   idx.LSPPosition(r.End),
	}
}

// OffsetOfLSP converts an LSP position back to a byte offset. Characters past
// the end of a line clamp to the line terminator, as LSP clients expect.
func (idx *LineIndex) OffsetOfLSP(pos protocol.Position) (int, bool) {
	line := int(pos.Line)
	if line >= len(idx.lines) {
		return 0, false
	}

	info := idx.lines[line]
	want := int(pos.Character)
	offset := info.StartOffset

	for units := 0; units < want && offset < info.NewlineStart; {
		r, size := utf8.DecodeRune(idx.text[offset:])
		offset += size
		units += utf16Len(r)
	}

	return offset, true
}

func utf16Len(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}

	return 1
}
