// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package grammar implements a parser for jparse documents that is driven by
// a declarative grammar rather than hand-written scanning code.
//
// The parser accepts exactly the same language as jparse.Parser, produces the
// same values, and reports the same kinds of errors at the same offsets:
//
//	p := grammar.NewParser()
//	v, err := p.Parse(`{"a": [1, 2.5, "three"]}`)
//
// Nesting limits are checked before the grammar is applied, so a deeply
// nested input is rejected without recursing over it.
package grammar

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/creachadair/jparse"
)

// A Parser parses documents using a participle grammar. It satisfies the
// jparse.DocumentParser interface. A Parser may be used concurrently by
// multiple goroutines, provided its settings are not changed while a parse is
// in progress.
type Parser struct {
	objectOnly bool
	maxDepth   int
}

// NewParser constructs a new Parser with default settings: any value is
// accepted at the top level, and nesting is limited to jparse.DefaultMaxDepth.
func NewParser() *Parser { return &Parser{maxDepth: jparse.DefaultMaxDepth} }

// Parse parses text as a single value using the default settings.
func Parse(text string) (jparse.Value, error) { return NewParser().Parse(text) }

// RequireObject configures the parser to require (true) that the top level of
// a document be an object, or to accept (false) any value there.
func (p *Parser) RequireObject(ok bool) { p.objectOnly = ok }

// SetMaxDepth sets the maximum nesting depth of arrays and objects, as
// jparse.ClampDepth.
func (p *Parser) SetMaxDepth(n int) { p.maxDepth = jparse.ClampDepth(n) }

// MaxDepth reports the maximum nesting depth of p.
func (p *Parser) MaxDepth() int { return p.maxDepth }

// ObjectOnly reports whether p requires an object at the top level.
func (p *Parser) ObjectOnly() bool { return p.objectOnly }

// Parse parses text as a complete document. In case of error, the concrete
// type of the error is *jparse.ParseError.
func (p *Parser) Parse(text string) (jparse.Value, error) {
	c := jparse.NewCursor(text)
	c.SkipSpace()
	if c.AtEnd() {
		return nil, c.Fail(jparse.EmptyInput)
	}

	// If the input nests too deeply, parse only the part before the limit is
	// crossed. An error in that part takes precedence; otherwise the input is
	// rejected at the offending delimiter.
	if cut := depthCut(text, p.maxDepth); cut >= 0 {
		_, err := p.parseText(text[:cut])
		var perr *jparse.ParseError
		if errors.As(err, &perr) && perr.Offset < cut {
			return nil, err
		}
		return nil, c.FailAt(jparse.DepthExceeded, cut)
	}
	return p.parseText(text)
}

// parseText parses text, which must not exceed the nesting limit.
func (p *Parser) parseText(text string) (jparse.Value, error) {
	c := jparse.NewCursor(text)
	if p.objectOnly {
		doc, err := objectParser.ParseString("", text)
		if err != nil {
			return nil, mapError(text, err, "object")
		}
		return finish(c, doc.Object.convert, doc.Trailing)
	}

	doc, err := valueParser.ParseString("", text)
	if err != nil {
		return nil, mapError(text, err, "value")
	}
	return finish(c, doc.Value.convert, doc.Trailing)
}

// finish converts the top-level value of a document, then checks for trailing
// content. A value that cannot be converted precedes any trailing tokens, so
// its error is reported first.
func finish(c *jparse.Cursor, convert func(*jparse.Cursor) (jparse.Value, error), tail *trailing) (jparse.Value, error) {
	v, err := convert(c)
	if err != nil {
		return nil, err
	} else if tail != nil {
		return nil, c.FailAt(jparse.TrailingContent, tail.Pos.Offset)
	}
	return v, nil
}

// mapError converts an error from participle into a *jparse.ParseError
// describing the same failure in text.
func mapError(text string, err error, want string) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return err // not a syntax error
	}
	// A number out of range before the failure point is reported first, as
	// it would have been rejected when it was reached.
	if nerr := badNumber(text, perr.Position().Offset); nerr != nil {
		return nerr
	}

	at := perr.Position().Offset
	c := jparse.NewCursor(text)
	c.Restore(jparse.Checkpoint(at))

	// Running out of input inside a container.
	c.SkipSpace()
	if c.AtEnd() {
		if open := openDelimiters(text); len(open) != 0 {
			return c.Unterminated(open[len(open)-1])
		}
		return c.Unexpected(want)
	}
	c.Restore(jparse.Checkpoint(at))

	// A quotation mark not lexed as a string has no matching close. That is
	// only an unterminated string where a string could begin.
	label := expected(text, at, want)
	if label == "value" || label == "string" {
		_, _, qerr := c.ScanQuoted()
		c.Restore(jparse.Checkpoint(at))
		if qerr != nil {
			return qerr
		}
	}
	return c.Unexpected(label)
}

// badNumber returns an error for the first number token in text before offset
// end whose value is out of range, or nil if there is none.
func badNumber(text string, end int) error {
	lex, err := jsonLexer.LexString("", text)
	if err != nil {
		return nil
	}
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() || tok.Pos.Offset >= end {
			return nil
		}
		if tok.Type != numberToken {
			continue
		}
		if _, ok := convertNumber(tok.Value); !ok {
			c := jparse.NewCursor(text)
			c.Restore(jparse.Checkpoint(tok.Pos.Offset))
			return c.Unexpected("value")
		}
	}
}

// expected describes what a parser wants at offset at in text, given that
// the input before at is a valid prefix of a document. The descriptions are
// the ones jparse.Parser uses; want describes the top-level value.
func expected(text string, at int, want string) string {
	prev, pos := lastByte(text, at)
	var inner byte
	if open := openDelimiters(text[:at]); len(open) != 0 {
		inner = open[len(open)-1]
	}
	switch prev {
	case 0:
		return want
	case '[', ':':
		return "value"
	case '{':
		return "string"
	case ',':
		if inner == '{' {
			return "string"
		}
		return "value"
	}

	// The previous token completed a value or an object key.
	switch inner {
	case '[':
		return `"," or "]"`
	case '{':
		if prev == '"' && isKey(text, pos) {
			return `":"`
		}
		return `"," or "}"`
	}
	return want
}

// lastByte returns the last non-space byte of text before offset end, and its
// offset. It returns 0, -1 if there is none.
func lastByte(text string, end int) (byte, int) {
	for i := end - 1; i >= 0; i-- {
		switch b := text[i]; b {
		case ' ', '\t', '\r', '\n':
		default:
			return b, i
		}
	}
	return 0, -1
}

// isKey reports whether the string token whose closing quote is at offset
// end in text is an object key, that is, whether it follows "{" or ",".
func isKey(text string, end int) bool {
	start := strings.LastIndexByte(text[:end], '"')
	prev, _ := lastByte(text, start)
	return prev == '{' || prev == ','
}

// scanDelimiters calls f with each container delimiter in text that is not
// inside a string literal, along with its offset. Scanning stops early if f
// returns false, or at the start of an unterminated string.
func scanDelimiters(text string, f func(offset int, b byte) bool) {
	c := jparse.NewCursor(text)
	for {
		if _, ok, err := c.ScanQuoted(); err != nil {
			return
		} else if ok {
			continue
		}
		pos := c.Offset()
		b, ok := c.Next()
		if !ok {
			return
		}
		switch b {
		case '[', '{', ']', '}':
			if !f(pos, b) {
				return
			}
		}
	}
}

// depthCut reports the offset of the first opening delimiter in text whose
// nesting depth exceeds limit, or -1 if there is none.
func depthCut(text string, limit int) int {
	cut, depth := -1, 0
	scanDelimiters(text, func(pos int, b byte) bool {
		if b == '[' || b == '{' {
			depth++
			if depth > limit {
				cut = pos
				return false
			}
		} else {
			depth = max(depth-1, 0)
		}
		return true
	})
	return cut
}

// openDelimiters returns the stack of container delimiters left open at the
// end of text, innermost last.
func openDelimiters(text string) []byte {
	var open []byte
	scanDelimiters(text, func(_ int, b byte) bool {
		if b == '[' || b == '{' {
			open = append(open, b)
		} else if len(open) != 0 {
			open = open[:len(open)-1]
		}
		return true
	})
	return open
}
