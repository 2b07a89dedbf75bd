// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"fmt"

	"go4.org/mem"
)

// A Checkpoint is a saved Cursor position. Restoring a checkpoint undoes any
// input consumed since it was taken.
type Checkpoint int

// A Cursor is a view of the unconsumed portion of an input text.
//
// The scanning methods of a Cursor advance it past the text they match. When
// a scan fails, the cursor is left where it was before the call, so that a
// caller can try another alternative at the same position.
type Cursor struct {
	text mem.RO
	pos  int
}

// NewCursor constructs a Cursor positioned at the beginning of text.
func NewCursor(text string) *Cursor { return &Cursor{text: mem.S(text)} }

// Offset reports the byte offset of c in its input.
func (c *Cursor) Offset() int { return c.pos }

// Rest returns the unconsumed input.
func (c *Cursor) Rest() mem.RO { return c.text.SliceFrom(c.pos) }

// AtEnd reports whether the input is exhausted.
func (c *Cursor) AtEnd() bool { return c.pos >= c.text.Len() }

// Checkpoint returns the current position of c.
func (c *Cursor) Checkpoint() Checkpoint { return Checkpoint(c.pos) }

// Restore moves c to the position saved by cp.
func (c *Cursor) Restore(cp Checkpoint) { c.pos = min(max(int(cp), 0), c.text.Len()) }

// Since returns the input consumed between cp and the current position.
func (c *Cursor) Since(cp Checkpoint) mem.RO { return c.text.Slice(int(cp), c.pos) }

// Peek returns the next byte of input without consuming it.
// It reports false if the input is exhausted.
func (c *Cursor) Peek() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.text.At(c.pos), true
}

// Next consumes and returns the next byte of input.
// It reports false if the input is exhausted.
func (c *Cursor) Next() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.pos++
	}
	return b, ok
}

// Optional calls f, and if f reports false restores c to where it was before
// the call. It returns the result from f.
func (c *Cursor) Optional(f func() bool) bool {
	cp := c.Checkpoint()
	if f() {
		return true
	}
	c.Restore(cp)
	return false
}

// MatchByte consumes b if it is the next byte of input.
func (c *Cursor) MatchByte(b byte) bool {
	if next, ok := c.Peek(); ok && next == b {
		c.pos++
		return true
	}
	return false
}

// MatchLiteral consumes lit if the unconsumed input begins with it.
func (c *Cursor) MatchLiteral(lit string) bool {
	if mem.HasPrefix(c.Rest(), mem.S(lit)) {
		c.pos += len(lit)
		return true
	}
	return false
}

// SkipSpace consumes zero or more whitespace characters.
func (c *Cursor) SkipSpace() {
	for {
		b, ok := c.Peek()
		if !ok || !isSpace(b) {
			return
		}
		c.pos++
	}
}

// ScanDigits consumes a run of one or more ASCII digits and returns them.
// It reports false without consuming input if no digit is present.
func (c *Cursor) ScanDigits() (mem.RO, bool) {
	cp := c.Checkpoint()
	for {
		b, ok := c.Peek()
		if !ok || !isDigit(b) {
			break
		}
		c.pos++
	}
	if c.pos == int(cp) {
		return mem.RO{}, false
	}
	return c.Since(cp), true
}

// ScanQuoted consumes a double-quoted string and returns its contents without
// the quotes. Backslash escapes are not interpreted: the string ends at the
// next quotation mark.
//
// If the input does not begin with a quotation mark, ScanQuoted reports
// false. If it does but no closing mark is found, ScanQuoted reports an
// UnterminatedString error located at the opening mark. In either case no
// input is consumed.
func (c *Cursor) ScanQuoted() (mem.RO, bool, error) {
	if b, ok := c.Peek(); !ok || b != '"' {
		return mem.RO{}, false, nil
	}
	body := c.Rest().SliceFrom(1)
	n := mem.IndexByte(body, '"')
	if n < 0 {
		return mem.RO{}, false, c.Fail(UnterminatedString)
	}
	c.pos += n + 2
	return body.SliceTo(n), true, nil
}

// Describe returns a human-readable label for the next token of input, for use
// in error messages.
func (c *Cursor) Describe() string {
	if c.AtEnd() {
		return "end of input"
	}
	r, _ := mem.DecodeRune(c.Rest())
	return fmt.Sprintf("%q", r)
}

// LineCol returns the line and column corresponding to offset in the input.
func (c *Cursor) LineCol(offset int) LineCol {
	offset = min(max(offset, 0), c.text.Len())
	lc := LineCol{Line: 1}
	for i := 0; i < offset; i++ {
		if c.text.At(i) == '\n' {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column++
		}
	}
	return lc
}

// Fail returns an error of the given kind at the current offset.
func (c *Cursor) Fail(kind ErrorKind) *ParseError { return c.FailAt(kind, c.pos) }

// FailAt returns an error of the given kind at the specified offset.
func (c *Cursor) FailAt(kind ErrorKind, offset int) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Location: c.LineCol(offset)}
}

// Unexpected returns an UnexpectedToken error at the current offset,
// describing the wanted alternatives and the input actually found.
func (c *Cursor) Unexpected(want ...string) *ParseError {
	e := c.Fail(UnexpectedToken)
	e.Expected = label(want...)
	e.Found = c.Describe()
	return e
}

// Unterminated returns an UnterminatedContainer error at the current offset
// for a container opened by delim.
func (c *Cursor) Unterminated(delim byte) *ParseError {
	e := c.Fail(UnterminatedContainer)
	e.Delimiter = delim
	return e
}

func isSpace(b byte) bool { return b == ' ' || b == '\r' || b == '\n' || b == '\t' }
func isDigit(b byte) bool { return '0' <= b && b <= '9' }
