// Package edit describes text edits against a document and maps offsets
// between the document before and after they are applied.
package edit

import "fmt"

// TextEdit replaces the bytes [Start, End) of a document with NewText.
type TextEdit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// NewText is the replacement text.
	NewText string
}

// Delta returns how much the edit grows or shrinks the document.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.End - e.Start)
}

// IsNoop reports whether the edit changes nothing.
func (e TextEdit) IsNoop() bool {
	return e.Start == e.End && e.NewText == ""
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]%q", e.Start, e.End, e.NewText)
}

// Builder accumulates edits for one document.
type Builder struct {
	Edits []TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{Edits: make([]TextEdit, 0)}
}

// Replace adds an edit that replaces bytes [start, end) with text.
func (b *Builder) Replace(start, end int, text string) *Builder {
	b.Edits = append(b.Edits, TextEdit{Start: start, End: end, NewText: text})
	return b
}

// Insert adds an edit that inserts text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete adds an edit that removes bytes [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}
