// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"fmt"
	"strings"
)

// ErrorKind classifies the errors reported by a parser.
//
// An ErrorKind is itself an error, so that errors.Is can be used to check the
// kind of a *ParseError:
//
//	if errors.Is(err, jparse.DepthExceeded) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedToken       ErrorKind = iota + 1 // no alternative matched here
	UnterminatedString                         // opening quote without a close
	UnterminatedContainer                      // "[" or "{" without a close
	TrailingContent                            // non-space input after the document
	EmptyInput                                 // input is empty or only whitespace
	DepthExceeded                              // nesting deeper than the limit
)

var kindStr = [...]string{
	0:                     "invalid error",
	UnexpectedToken:       "unexpected token",
	UnterminatedString:    "unterminated string",
	UnterminatedContainer: "unterminated container",
	TrailingContent:       "trailing content",
	EmptyInput:            "empty input",
	DepthExceeded:         "depth exceeded",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// ParseError is the concrete type of errors reported by the parsers.
// No partial value is ever returned alongside a ParseError.
type ParseError struct {
	Kind     ErrorKind
	Offset   int     // byte offset where the failure was detected
	Location LineCol // line and column corresponding to Offset

	Expected  string // for UnexpectedToken: a description of what was wanted
	Found     string // for UnexpectedToken: a description of what was there
	Delimiter byte   // for UnterminatedContainer: the open delimiter
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.message())
}

// Is reports whether target is the ErrorKind of e.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func (e *ParseError) message() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Found)
	case UnterminatedContainer:
		return fmt.Sprintf("missing close for %q", rune(e.Delimiter))
	case TrailingContent:
		return "unexpected content after value"
	default:
		return e.Kind.String()
	}
}

// label makes a human-readable summary string for the given alternatives.
func label(want ...string) string {
	switch len(want) {
	case 0:
		return "more input"
	case 1:
		return want[0]
	}
	last := len(want) - 1
	return strings.Join(want[:last], ", ") + " or " + want[last]
}
