package edit

import "github.com/yaklabco/oakwood/pkg/lexer"

// Changes is a prepared batch of edits against one version of a document.
// All offsets given to its methods are interpreted against either the old or
// the new text as the method name says.
type Changes struct {
	edits []TextEdit

	// after[i] is the cumulative delta once edits[0..i] are applied.
	after []int

	oldLen int
}

// NewChanges prepares edits against a document of oldLen bytes.
func NewChanges(edits []TextEdit, oldLen int) (*Changes, error) {
	prepared, err := Prepare(edits, oldLen)
	if err != nil {
		return nil, err
	}

	after := make([]int, len(prepared))
	delta := 0
	for i, e := range prepared {
		delta += e.Delta()
		after[i] = delta
	}

	return &Changes{edits: prepared, after: after, oldLen: oldLen}, nil
}

// Edits returns the prepared edits in document order.
func (c *Changes) Edits() []TextEdit { return c.edits }

// IsEmpty reports whether the batch changes nothing.
func (c *Changes) IsEmpty() bool { return len(c.edits) == 0 }

// Delta returns the total growth of the document.
func (c *Changes) Delta() int {
	if len(c.after) == 0 {
		return 0
	}

	return c.after[len(c.after)-1]
}

// NewLen returns the length of the edited document.
func (c *Changes) NewLen() int { return c.oldLen + c.Delta() }

// Apply applies the batch to the old content.
func (c *Changes) Apply(content []byte) []byte {
	return Apply(content, c.edits)
}

// FirstChange returns the old offset of the first edit, or the old length if
// there is none.
func (c *Changes) FirstChange() int {
	if len(c.edits) == 0 {
		return c.oldLen
	}

	return c.edits[0].Start
}

// MapOldToNew maps an old offset to the new text. Offsets inside a replaced
// range map to the end of its replacement.
func (c *Changes) MapOldToNew(offset int) int {
	delta := 0
	for i, e := range c.edits {
		if offset <= e.Start {
			break
		}
		if offset < e.End {
			return e.Start + delta + len(e.NewText)
		}
		delta = c.after[i]
	}

	return offset + delta
}

// MapNewToOld maps a new offset back to the old text. It returns false for
// offsets inside inserted text, which has no old counterpart.
func (c *Changes) MapNewToOld(offset int) (int, bool) {
	delta := 0
	for i, e := range c.edits {
		newStart := e.Start + delta
		newEnd := newStart + len(e.NewText)

		if offset < newStart {
			return offset - delta, true
		}
		if offset < newEnd {
			return 0, false
		}
		delta = c.after[i]
	}

	return offset - delta, true
}

// Overlaps reports whether the old range [start, end) intersects a replaced
// range.
func (c *Changes) Overlaps(start, end int) bool {
	for _, e := range c.edits {
		if e.Start >= end {
			break
		}
		if start < e.End && end > e.Start {
			return true
		}
	}

	return false
}

// Touches is Overlaps with closed ranges on both sides: an insertion at
// either boundary of [start, end] counts.
func (c *Changes) Touches(start, end int) bool {
	for _, e := range c.edits {
		if e.Start > end {
			break
		}
		if start <= e.End && end >= e.Start {
			return true
		}
	}

	return false
}

// Envelope returns one change spanning every edit, for relexing. It is false
// when there are no edits.
func (c *Changes) Envelope() (lexer.Change, bool) {
	if len(c.edits) == 0 {
		return lexer.Change{}, false
	}

	first := c.edits[0]
	last := c.edits[len(c.edits)-1]

	return lexer.Change{
		Start:  first.Start,
		OldEnd: last.End,
		NewEnd: last.End + c.Delta(),
	}, true
}
