// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jparse"
)

func TestCursorLiteral(t *testing.T) {
	c := jparse.NewCursor("nullnul")
	if !c.MatchLiteral("null") {
		t.Fatal(`MatchLiteral("null"): got false, want true`)
	}
	if got := c.Offset(); got != 4 {
		t.Errorf("Offset: got %d, want 4", got)
	}
	if c.MatchLiteral("null") {
		t.Error(`MatchLiteral("null") on "nul": got true, want false`)
	}
	if got := c.Offset(); got != 4 {
		t.Errorf("Offset after failed match: got %d, want 4", got)
	}
	if c.AtEnd() {
		t.Error("AtEnd: got true, want false")
	}
}

func TestCursorSpace(t *testing.T) {
	c := jparse.NewCursor(" \t\r\n x ")
	c.SkipSpace()
	if got := c.Offset(); got != 5 {
		t.Errorf("SkipSpace: offset %d, want 5", got)
	}
	c.SkipSpace() // no whitespace here; must not fail or move
	if b, ok := c.Peek(); !ok || b != 'x' {
		t.Errorf("Peek: got %q, %v; want 'x', true", b, ok)
	}
	if b, ok := c.Next(); !ok || b != 'x' {
		t.Errorf("Next: got %q, %v; want 'x', true", b, ok)
	}
	c.SkipSpace()
	if !c.AtEnd() {
		t.Errorf("AtEnd: got false at offset %d", c.Offset())
	}
	if _, ok := c.Next(); ok {
		t.Error("Next at end: got true, want false")
	}
}

func TestCursorDigits(t *testing.T) {
	c := jparse.NewCursor("01234x")
	digits, ok := c.ScanDigits()
	if !ok {
		t.Fatal("ScanDigits: got false, want true")
	} else if got := digits.StringCopy(); got != "01234" {
		t.Errorf("ScanDigits: got %q, want %q", got, "01234")
	}
	if _, ok := c.ScanDigits(); ok {
		t.Error("ScanDigits on x: got true, want false")
	}
	if got := c.Offset(); got != 5 {
		t.Errorf("Offset: got %d, want 5", got)
	}
}

func TestCursorQuoted(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
		err   bool
		end   int
	}{
		{`"" x`, "", true, false, 2},
		{`"abc"`, "abc", true, false, 5},
		{`"a\nb"`, `a\nb`, true, false, 6},
		{`"a\"b"`, `a\`, true, false, 4}, // no escape processing
		{`abc`, "", false, false, 0},
		{``, "", false, false, 0},
		{`"abc`, "", false, true, 0},
	}
	for _, test := range tests {
		c := jparse.NewCursor(test.input)
		text, ok, err := c.ScanQuoted()
		if test.err {
			if !errors.Is(err, jparse.UnterminatedString) {
				t.Errorf("ScanQuoted %#q: got error %v, want %v", test.input, err, jparse.UnterminatedString)
			}
		} else if err != nil {
			t.Errorf("ScanQuoted %#q: unexpected error: %v", test.input, err)
		}
		if ok != test.ok {
			t.Errorf("ScanQuoted %#q: got ok=%v, want %v", test.input, ok, test.ok)
		} else if got := text.StringCopy(); got != test.want {
			t.Errorf("ScanQuoted %#q: got %#q, want %#q", test.input, got, test.want)
		}
		if got := c.Offset(); got != test.end {
			t.Errorf("ScanQuoted %#q: offset %d, want %d", test.input, got, test.end)
		}
	}
}

func TestCursorCheckpoint(t *testing.T) {
	c := jparse.NewCursor("-12.x")
	cp := c.Checkpoint()
	c.MatchByte('-')
	c.ScanDigits()
	if got := c.Since(cp).StringCopy(); got != "-12" {
		t.Errorf("Since: got %q, want %q", got, "-12")
	}

	// An incomplete fraction is not consumed.
	if c.Optional(func() bool {
		if !c.MatchByte('.') {
			return false
		}
		_, ok := c.ScanDigits()
		return ok
	}) {
		t.Error("Optional: got true, want false")
	}
	if got := c.Offset(); got != 3 {
		t.Errorf("Offset after Optional: got %d, want 3", got)
	}

	c.Restore(cp)
	if got := c.Offset(); got != 0 {
		t.Errorf("Offset after Restore: got %d, want 0", got)
	}
	if got := c.Rest().StringCopy(); got != "-12.x" {
		t.Errorf("Rest: got %q, want %q", got, "-12.x")
	}
}

func TestCursorErrors(t *testing.T) {
	c := jparse.NewCursor("ab\ncd\n")
	if got, want := c.LineCol(4).String(), "2:1"; got != want {
		t.Errorf("LineCol(4): got %s, want %s", got, want)
	}
	if got, want := c.LineCol(100).String(), "3:0"; got != want {
		t.Errorf("LineCol(100): got %s, want %s", got, want)
	}

	c.MatchLiteral("ab")
	e := c.Unexpected(`","`, `"]"`)
	if e.Kind != jparse.UnexpectedToken || e.Offset != 2 {
		t.Errorf("Unexpected: got %v at %d, want %v at 2", e.Kind, e.Offset, jparse.UnexpectedToken)
	}
	if got, want := e.Error(), `at 1:2: expected "," or "]", got '\n'`; got != want {
		t.Errorf("Unexpected: got %q, want %q", got, want)
	}
	if got := c.Unterminated('{'); got.Delimiter != '{' || got.Kind != jparse.UnterminatedContainer {
		t.Errorf("Unterminated: got %+v", got)
	}
	if got := c.FailAt(jparse.TrailingContent, 3); got.Location != (jparse.LineCol{Line: 2, Column: 0}) {
		t.Errorf("FailAt location: got %v, want 2:0", got.Location)
	}
	if errors.Is(c.Fail(jparse.EmptyInput), jparse.DepthExceeded) {
		t.Error("errors.Is matched the wrong kind")
	}
}
