// cursor.go implements a forward-only cursor over the unicode scalars of the input.
package bbcode

import "unicode/utf8"

// Cursor is a position-tracking view over the scalars of a string.
// Positions are byte offsets so that spans can be sliced from the input directly,
// but every move steps over a whole UTF-8 encoded scalar.
type Cursor struct {
	input string
	pos   int
	prev  int // byte offset of the previous scalar, -1 at the start
}

// NewCursor returns a cursor positioned at the first scalar of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input, prev: -1}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// AtEnd reports whether the cursor has consumed the whole input.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.input)
}

// Current returns the scalar under the cursor.
func (c *Cursor) Current() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.pos:])
	return r, true
}

// Peek returns the scalar after the current one.
func (c *Cursor) Peek() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(c.input[c.pos:])
	next := c.pos + size
	if next >= len(c.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.input[next:])
	return r, true
}

// Previous returns the scalar before the current one.
func (c *Cursor) Previous() (rune, bool) {
	if c.prev < 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.prev:])
	return r, true
}

// Advance moves past the current scalar. It returns false when already at the end.
func (c *Cursor) Advance() bool {
	if c.AtEnd() {
		return false
	}
	_, size := utf8.DecodeRuneInString(c.input[c.pos:])
	c.prev = c.pos
	c.pos += size
	return true
}

// AdvanceUntil moves forward until stop returns true for the current scalar or the
// input ends. It returns the scalar it stopped on and whether one was found.
func (c *Cursor) AdvanceUntil(stop func(rune) bool) (rune, bool) {
	for {
		r, ok := c.Current()
		if !ok {
			return 0, false
		}
		if stop(r) {
			return r, true
		}
		c.Advance()
	}
}

// Slice returns the input between two byte offsets previously reported by Pos.
func (c *Cursor) Slice(from, to int) string {
	return c.input[from:to]
}
