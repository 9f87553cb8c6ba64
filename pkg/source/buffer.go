// Package source holds immutable source text and the line index used to
// translate byte offsets into human and LSP positions.
package source

import (
	"fmt"
	"os"
	"sync"
	"unicode/utf8"
)

// Buffer is one immutable version of a document's text.
// All offsets handed out by the engine are byte offsets into a Buffer.
type Buffer struct {
	path    string
	text    []byte
	version int

	linesOnce sync.Once
	lines     *LineIndex
}

// NewBuffer creates version 0 of a buffer. The text is copied.
func NewBuffer(path string, text []byte) *Buffer {
	owned := make([]byte, len(text))
	copy(owned, text)

	return &Buffer{path: path, text: owned}
}

// NewBufferString is NewBuffer for string input.
func NewBufferString(path, text string) *Buffer {
	return &Buffer{path: path, text: []byte(text)}
}

// ReadFile loads a buffer from disk.
func ReadFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}

	return &Buffer{path: path, text: data}, nil
}

// WithText returns the next version of this buffer holding text.
func (b *Buffer) WithText(text []byte) *Buffer {
	next := NewBuffer(b.path, text)
	next.version = b.version + 1

	return next
}

// Path returns the buffer's path, which may be empty.
func (b *Buffer) Path() string { return b.path }

// Version counts how many times the document has been replaced.
func (b *Buffer) Version() int { return b.version }

// Len returns the length of the text in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Bytes returns the underlying text. Callers must not modify it.
func (b *Buffer) Bytes() []byte { return b.text }

// String returns the whole text.
func (b *Buffer) String() string { return string(b.text) }

// Slice returns the text in [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(b.text))
	if start >= end {
		return ""
	}

	return string(b.text[start:end])
}

// ByteAt returns the byte at offset, or 0 past the end.
func (b *Buffer) ByteAt(offset int) byte {
	if offset < 0 || offset >= len(b.text) {
		return 0
	}

	return b.text[offset]
}

// RuneAt decodes the character starting at offset.
// It returns (utf8.RuneError, 0) at or past the end.
func (b *Buffer) RuneAt(offset int) (rune, int) {
	if offset < 0 || offset >= len(b.text) {
		return utf8.RuneError, 0
	}

	return utf8.DecodeRune(b.text[offset:])
}

// Lines returns the buffer's line index, building it on first use.
func (b *Buffer) Lines() *LineIndex {
	b.linesOnce.Do(func() {
		b.lines = NewLineIndex(b.text)
	})

	return b.lines
}
