package lexer

import (
	"bytes"
	"unicode/utf8"
)

// EOFRune is returned by Peek at the end of the current region.
const EOFRune rune = -1

// Cursor walks a byte slice one character at a time. Offsets are absolute
// into the whole document even when the cursor is limited to a sub-range.
type Cursor struct {
	src   []byte
	pos   int
	limit int
}

// NewCursor creates a cursor over src[start:end).
func NewCursor(src []byte, start, end int) *Cursor {
	return &Cursor{src: src, pos: start, limit: end}
}

// Offset returns the current absolute byte offset.
func (c *Cursor) Offset() int { return c.pos }

// Limit returns the exclusive end of the region the cursor may read.
func (c *Cursor) Limit() int { return c.limit }

// Seek moves the cursor to an absolute offset, clamped to the region.
func (c *Cursor) Seek(offset int) {
	c.pos = max(0, min(offset, c.limit))
}

// AtEnd reports whether the cursor has reached the end of its region.
func (c *Cursor) AtEnd() bool { return c.pos >= c.limit }

// Peek returns the character at the cursor without consuming it.
func (c *Cursor) Peek() rune {
	r, _ := c.decode(c.pos)

	return r
}

// PeekN returns the character n characters ahead; PeekN(0) is Peek.
func (c *Cursor) PeekN(n int) rune {
	at := c.pos
	for range n {
		_, size := c.decode(at)
		if size == 0 {
			return EOFRune
		}
		at += size
	}

	r, _ := c.decode(at)

	return r
}

// PeekByte returns the byte n bytes ahead, or 0 outside the region.
func (c *Cursor) PeekByte(n int) byte {
	at := c.pos + n
	if at < 0 || at >= c.limit {
		return 0
	}

	return c.src[at]
}

// Next consumes and returns one character.
func (c *Cursor) Next() rune {
	r, size := c.decode(c.pos)
	c.pos += size

	return r
}

// Advance consumes n bytes, stopping at the end of the region.
func (c *Cursor) Advance(n int) {
	c.pos = min(c.pos+n, c.limit)
}

// StartsWith reports whether the remaining region begins with s.
func (c *Cursor) StartsWith(s string) bool {
	return bytes.HasPrefix(c.src[c.pos:c.limit], []byte(s))
}

// AdvanceIf consumes s if the region continues with it.
func (c *Cursor) AdvanceIf(s string) bool {
	if !c.StartsWith(s) {
		return false
	}
	c.pos += len(s)

	return true
}

// AdvanceWhile consumes characters while pred holds and returns the number of
// bytes consumed.
func (c *Cursor) AdvanceWhile(pred func(rune) bool) int {
	start := c.pos
	for {
		r, size := c.decode(c.pos)
		if size == 0 || !pred(r) {
			return c.pos - start
		}
		c.pos += size
	}
}

// AdvanceUntil consumes characters up to, not including, the next occurrence
// of s. It returns false and stops at the end of the region when s is absent.
func (c *Cursor) AdvanceUntil(s string) bool {
	idx := bytes.Index(c.src[c.pos:c.limit], []byte(s))
	if idx < 0 {
		c.pos = c.limit
		return false
	}
	c.pos += idx

	return true
}

// AdvanceUntilAny consumes bytes up to the first byte contained in set.
func (c *Cursor) AdvanceUntilAny(set string) bool {
	idx := bytes.IndexAny(c.src[c.pos:c.limit], set)
	if idx < 0 {
		c.pos = c.limit
		return false
	}
	c.pos += idx

	return true
}

// Slice returns the text in [start, end), clamped to the region.
func (c *Cursor) Slice(start, end int) string {
	start = max(0, start)
	end = min(end, c.limit)
	if start >= end {
		return ""
	}

	return string(c.src[start:end])
}

// Source returns the whole document.
func (c *Cursor) Source() []byte { return c.src }

func (c *Cursor) decode(at int) (rune, int) {
	if at >= c.limit {
		return EOFRune, 0
	}

	r, size := utf8.DecodeRune(c.src[at:c.limit])

	return r, size
}
