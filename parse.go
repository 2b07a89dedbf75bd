// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import "go4.org/mem"

const (
	// DefaultMaxDepth is the nesting limit used when none is configured.
	DefaultMaxDepth = 1000

	// MaxDepthLimit is the largest nesting limit a parser accepts. Parsing
	// recurses once per level of nesting, so the limit bounds stack use.
	MaxDepthLimit = 100000
)

// A DocumentParser parses a complete document into a Value.
type DocumentParser interface {
	Parse(text string) (Value, error)
}

// Parse parses text as a single value using the default settings.
// It is shorthand for NewParser().Parse(text).
func Parse(text string) (Value, error) { return NewParser().Parse(text) }

// A Parser is a recursive-descent parser for documents. A Parser may be used
// concurrently by multiple goroutines, provided its settings are not changed
// while a parse is in progress.
type Parser struct {
	objectOnly bool
	maxDepth   int
}

// NewParser constructs a new Parser with default settings: any value is
// accepted at the top level, and nesting is limited to DefaultMaxDepth.
func NewParser() *Parser { return &Parser{maxDepth: DefaultMaxDepth} }

// RequireObject configures the parser to require (true) that the top level of
// a document be an object, or to accept (false) any value there.
func (p *Parser) RequireObject(ok bool) { p.objectOnly = ok }

// SetMaxDepth sets the maximum nesting depth of arrays and objects. If n < 1,
// DefaultMaxDepth is used; values above MaxDepthLimit are reduced to it.
func (p *Parser) SetMaxDepth(n int) { p.maxDepth = ClampDepth(n) }

// ClampDepth returns the nesting limit a parser uses when asked for n.
func ClampDepth(n int) int {
	if n < 1 {
		return DefaultMaxDepth
	}
	return min(n, MaxDepthLimit)
}

// MaxDepth reports the maximum nesting depth of p.
func (p *Parser) MaxDepth() int { return p.maxDepth }

// ObjectOnly reports whether p requires an object at the top level.
func (p *Parser) ObjectOnly() bool { return p.objectOnly }

// Parse parses text as a complete document. Whitespace around the document is
// discarded, but any other content after the top-level value is an error.
// In case of error, the concrete type of the error is *ParseError.
func (p *Parser) Parse(text string) (_ Value, err error) {
	ps := &parseState{c: NewCursor(text), maxDepth: p.maxDepth}
	defer ps.recoverParseError(&err)

	ps.c.SkipSpace()
	if ps.c.AtEnd() {
		return nil, ps.c.Fail(EmptyInput)
	}

	var v Value
	var ok bool
	if p.objectOnly {
		v, ok = ps.try(ps.parseObject)
		if !ok {
			return nil, ps.c.Unexpected("object")
		}
	} else if v, ok = ps.parseValue(); !ok {
		return nil, ps.c.Unexpected("value")
	}

	ps.c.SkipSpace()
	if !ps.c.AtEnd() {
		return nil, ps.c.Fail(TrailingContent)
	}
	return v, nil
}

// parseState holds the state of a single call to Parse.
//
// The parsing methods report false when their construct does not match the
// input at the current position. Once a container's opening delimiter has been
// consumed, however, the parse is committed to it, and a failure inside the
// container panics with a *ParseError that is recovered by Parse.
type parseState struct {
	c        *Cursor
	depth    int
	maxDepth int
}

func (ps *parseState) recoverParseError(errp *error) {
	if x := recover(); x != nil {
		perr, ok := x.(*ParseError)
		if !ok {
			panic(x)
		}
		*errp = perr
	}
}

// try runs alt from a checkpoint of the cursor, restoring the checkpoint if
// alt does not match.
func (ps *parseState) try(alt func() (Value, bool)) (Value, bool) {
	cp := ps.c.Checkpoint()
	v, ok := alt()
	if !ok {
		ps.c.Restore(cp)
	}
	return v, ok
}

// parseValue tries each kind of value in turn and returns the first that
// matches. Integers must be tried before numbers; see parseInteger.
func (ps *parseState) parseValue() (Value, bool) {
	for _, alt := range [...]func() (Value, bool){
		ps.parseNull,
		ps.parseBool,
		ps.parseInteger,
		ps.parseNumber,
		ps.parseString,
		ps.parseArray,
		ps.parseObject,
	} {
		if v, ok := ps.try(alt); ok {
			return v, true
		}
	}
	return nil, false
}

func (ps *parseState) parseNull() (Value, bool) {
	if ps.c.MatchLiteral("null") {
		return Null{}, true
	}
	return nil, false
}

func (ps *parseState) parseBool() (Value, bool) {
	if ps.c.MatchLiteral("true") {
		return Bool(true), true
	} else if ps.c.MatchLiteral("false") {
		return Bool(false), true
	}
	return nil, false
}

// parseInteger matches an optionally-negative run of digits. It does not match
// if the digits are followed by a fraction or an exponent, so that the number
// parser gets a chance at the complete literal, nor if the value does not fit
// in 64 bits.
func (ps *parseState) parseInteger() (Value, bool) {
	cp := ps.c.Checkpoint()
	ps.c.MatchByte('-')
	if _, ok := ps.c.ScanDigits(); !ok {
		return nil, false
	}
	if b, ok := ps.c.Peek(); ok && (b == '.' || b == 'e' || b == 'E') {
		return nil, false
	}
	z, err := mem.ParseInt(ps.c.Since(cp), 10, 64)
	if err != nil {
		return nil, false
	}
	return Integer(z), true
}

// parseNumber matches a decimal floating-point literal: an optional sign,
// digits, an optional fraction, and an optional exponent. An incomplete
// fraction or exponent is left unconsumed.
func (ps *parseState) parseNumber() (Value, bool) {
	cp := ps.c.Checkpoint()
	ps.parseSign()
	if _, ok := ps.c.ScanDigits(); !ok {
		return nil, false
	}
	ps.c.Optional(func() bool {
		if !ps.c.MatchByte('.') {
			return false
		}
		_, ok := ps.c.ScanDigits()
		return ok
	})
	ps.c.Optional(func() bool {
		if !ps.c.MatchByte('e') && !ps.c.MatchByte('E') {
			return false
		}
		ps.parseSign()
		_, ok := ps.c.ScanDigits()
		return ok
	})
	f, err := mem.ParseFloat(ps.c.Since(cp), 64)
	if err != nil {
		return nil, false // out of range
	}
	return Number(f), true
}

func (ps *parseState) parseSign() {
	if !ps.c.MatchByte('-') {
		ps.c.MatchByte('+')
	}
}

func (ps *parseState) parseString() (Value, bool) {
	text, ok, err := ps.c.ScanQuoted()
	if err != nil {
		panic(err)
	} else if !ok {
		return nil, false
	}
	return String(text.StringCopy()), true
}

// parseArray matches "[" [value {"," value}] "]".
func (ps *parseState) parseArray() (Value, bool) {
	open := ps.c.Offset()
	if !ps.c.MatchByte('[') {
		return nil, false
	}
	ps.enter(open)
	defer ps.leave()

	arr := Array{}
	ps.c.SkipSpace()
	if ps.c.MatchByte(']') {
		return arr, true // empty array
	}
	for {
		arr = append(arr, ps.element('['))

		ps.c.SkipSpace()
		if ps.c.MatchByte(']') {
			return arr, true
		}
		ps.require('[', ',', `","`, `"]"`)
	}
}

// parseObject matches "{" [member {"," member}] "}", where a member is
// string ":" value. An empty object is permitted.
func (ps *parseState) parseObject() (Value, bool) {
	open := ps.c.Offset()
	if !ps.c.MatchByte('{') {
		return nil, false
	}
	ps.enter(open)
	defer ps.leave()

	var members []*Member
	ps.c.SkipSpace()
	if ps.c.MatchByte('}') {
		return Object{}, true // empty object
	}
	for {
		ps.c.SkipSpace()
		key, ok, err := ps.c.ScanQuoted()
		if err != nil {
			panic(err)
		} else if !ok {
			panic(ps.mismatch('{', "string"))
		}
		ps.c.SkipSpace()
		ps.require('{', ':', `":"`)
		members = append(members, Field(key.StringCopy(), ps.element('{')))

		ps.c.SkipSpace()
		if ps.c.MatchByte('}') {
			return NewObject(members...), true
		}
		ps.require('{', ',', `","`, `"}"`)
	}
}

// element parses a value inside a container opened by delim.
func (ps *parseState) element(delim byte) Value {
	ps.c.SkipSpace()
	v, ok := ps.parseValue()
	if !ok {
		panic(ps.mismatch(delim, "value"))
	}
	return v
}

// require consumes b, or panics with an error describing the wanted
// alternatives inside a container opened by delim.
func (ps *parseState) require(delim, b byte, want ...string) {
	if !ps.c.MatchByte(b) {
		panic(ps.mismatch(delim, want...))
	}
}

// mismatch reports an error at the current position inside a container
// opened by delim. Running out of input is reported as an unterminated
// container rather than as an unexpected token.
func (ps *parseState) mismatch(delim byte, want ...string) *ParseError {
	if ps.c.AtEnd() {
		return ps.c.Unterminated(delim)
	}
	return ps.c.Unexpected(want...)
}

// enter records entry to a container whose opening delimiter is at offset.
func (ps *parseState) enter(offset int) {
	ps.depth++
	if ps.depth > ps.maxDepth {
		panic(ps.c.FailAt(DepthExceeded, offset))
	}
}

func (ps *parseState) leave() { ps.depth-- }

// MustParse parses text as by Parse, but panics if parsing fails.
// It is intended for use with constant inputs, such as in tests.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}
