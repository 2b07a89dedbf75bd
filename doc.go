// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jparse implements a backtracking recursive-descent parser for a
// JSON-like grammar of literals, numbers, strings, arrays, and objects.
//
// # Parsing
//
// Call Parse to parse a complete document into a Value:
//
//	v, err := jparse.Parse(`{"name": "Dennis", "marks": [90, -80, 85.5]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parse succeeds only if the whole input is consumed: whitespace after the
// value is discarded, but anything else is reported as TrailingContent. To
// require an object at the top level, or to change the nesting limit,
// construct a Parser:
//
//	p := jparse.NewParser()
//	p.RequireObject(true)
//	p.SetMaxDepth(64)
//	v, err := p.Parse(input)
//
// # Values
//
// The concrete type of a Value is one of:
//
//	Type    | Go representation | Input
//	------- | ----------------- | ------------------------------------
//	Null    | struct{}          | null
//	Bool    | bool              | true, false
//	Integer | int64             | -15, 0, 1024
//	Number  | float64           | 2.5, -1e9, +3
//	String  | string            | "raw text"
//	Array   | []Value           | [ ... ]
//	Object  | []*Member         | { "key": value, ... }
//
// A literal with a fraction or exponent, or an integer too large for 64 bits,
// is a Number; any other run of digits is an Integer. String values hold the
// raw text between the quotation marks; backslash escapes are not decoded (but
// see String.Unescape), and a string ends at the first quotation mark after
// it begins. If an object has more than one member with the same key, the last
// value for the key is kept. An empty object "{}" is permitted.
//
// # Errors
//
// In case of error, no partial value is returned and the error has concrete
// type *ParseError, recording the kind of error and its location. An
// ErrorKind is itself an error, so the kind can be checked with errors.Is:
//
//	if errors.Is(err, jparse.DepthExceeded) {
//	   log.Print("Input nested too deeply")
//	}
//
// # Cursors
//
// The Cursor type exposes the primitive scanners the parser is built on. The
// scanning methods of a cursor consume input when they match, and leave the
// cursor unchanged when they do not. A Checkpoint records a position of the
// cursor so that a partial match can be undone.
//
// The grammar subpackage provides a second parser for the same language,
// driven by a declarative grammar. Both parsers satisfy DocumentParser and
// report the same errors for the same inputs.
package jparse
