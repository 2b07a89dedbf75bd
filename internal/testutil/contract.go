// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/google/go-cmp/cmp"
)

// Parser is the interface shared by the parser implementations under test.
type Parser interface {
	jparse.DocumentParser

	RequireObject(bool)
	SetMaxDepth(int)
}

// A Case is a single input with its expected outcome. If Err is zero, the
// input must parse to Want; otherwise parsing must fail with an error of kind
// Err at Offset.
type Case struct {
	Name   string
	Input  string
	Want   jparse.Value
	Err    jparse.ErrorKind
	Offset int
	Delim  byte // for jparse.UnterminatedContainer

	ObjectOnly bool
	MaxDepth   int // if > 0, override the default limit
}

// Cases is the table of contract cases that every parser must satisfy.
var Cases = []Case{
	// Literals.
	{Name: "Null", Input: "null", Want: jparse.Null{}},
	{Name: "True", Input: "true", Want: jparse.Bool(true)},
	{Name: "False", Input: "false", Want: jparse.Bool(false)},

	// Numbers.
	{Name: "Int", Input: "123", Want: jparse.Integer(123)},
	{Name: "NegInt", Input: "-123", Want: jparse.Integer(-123)},
	{Name: "Zero", Input: "0", Want: jparse.Integer(0)},
	{Name: "LeadingZero", Input: "007", Want: jparse.Integer(7)},
	{Name: "Float", Input: "123.45", Want: jparse.Number(123.45)},
	{Name: "NegFloat", Input: "-0.5E-2", Want: jparse.Number(-0.005)},
	{Name: "Exponent", Input: "1e3", Want: jparse.Number(1000)},
	{Name: "PlusSign", Input: "+5", Want: jparse.Number(5)},
	{Name: "BigInt", Input: "12345678901234567890", Want: jparse.Number(12345678901234567890)},

	// Strings.
	{Name: "Empty", Input: `""`, Want: jparse.String("")},
	{Name: "Text", Input: `"a b c"`, Want: jparse.String("a b c")},
	{Name: "RawEscape", Input: `"a\nb"`, Want: jparse.String(`a\nb`)},
	{Name: "NoQuoteEscape", Input: `"a\"`, Want: jparse.String(`a\`)},
	{Name: "Unicode", Input: `"héllo, 世界"`, Want: jparse.String("héllo, 世界")},

	// Arrays.
	{Name: "Array", Input: "[1,2,3]", Want: jparse.Array{
		jparse.Integer(1), jparse.Integer(2), jparse.Integer(3),
	}},
	{Name: "EmptyArray", Input: "[]", Want: jparse.Array{}},
	{Name: "SpacedArray", Input: " [ 1 , \"x\" ,\n\tnull ] \n", Want: jparse.Array{
		jparse.Integer(1), jparse.String("x"), jparse.Null{},
	}},
	{Name: "MixedNumbers", Input: "[1, 2.5, -3, 4e2]", Want: jparse.Array{
		jparse.Integer(1), jparse.Number(2.5), jparse.Integer(-3), jparse.Number(400),
	}},
	{Name: "NestedArray", Input: "[[],[[]]]", Want: jparse.Array{
		jparse.Array{}, jparse.Array{jparse.Array{}},
	}},

	// Objects.
	{Name: "Object", Input: `{"a":1,"b":2}`, Want: jparse.Object{
		jparse.Field("a", jparse.Integer(1)),
		jparse.Field("b", jparse.Integer(2)),
	}},
	{Name: "EmptyObject", Input: "{}", Want: jparse.Object{}},
	{Name: "SpacedEmptyObject", Input: "{ \n }", Want: jparse.Object{}},
	{Name: "DuplicateKey", Input: `{"a":1,"b":true,"a":2}`, Want: jparse.Object{
		jparse.Field("a", jparse.Integer(2)),
		jparse.Field("b", jparse.Bool(true)),
	}},
	{Name: "Nested", Input: `{"a": [{"b": null}], "c": {}, "d": "x"}`, Want: jparse.Object{
		jparse.Field("a", jparse.Array{jparse.Object{jparse.Field("b", jparse.Null{})}}),
		jparse.Field("c", jparse.Object{}),
		jparse.Field("d", jparse.String("x")),
	}},
	{Name: "FloatMember", Input: `{"price": 123.45}`, Want: jparse.Object{
		jparse.Field("price", jparse.Number(123.45)),
	}},

	// Errors.
	{Name: "EmptyInput", Input: "", Err: jparse.EmptyInput, Offset: 0},
	{Name: "BlankInput", Input: " \n\t ", Err: jparse.EmptyInput, Offset: 4},
	{Name: "MissingValue", Input: `{"a": }`, Err: jparse.UnexpectedToken, Offset: 6},
	{Name: "MissingElement", Input: `[1,]`, Err: jparse.UnexpectedToken, Offset: 3},
	{Name: "MissingComma", Input: `[1 2]`, Err: jparse.UnexpectedToken, Offset: 3},
	{Name: "MissingColon", Input: `{"a" 1}`, Err: jparse.UnexpectedToken, Offset: 5},
	{Name: "BareKey", Input: `{a: 1}`, Err: jparse.UnexpectedToken, Offset: 1},
	{Name: "NumberKey", Input: `{1: 2}`, Err: jparse.UnexpectedToken, Offset: 1},
	{Name: "TrailingMemberComma", Input: `{"a":1,}`, Err: jparse.UnexpectedToken, Offset: 7},
	{Name: "StrayClose", Input: `]`, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "BadChar", Input: `@`, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "Partial", Input: `tru`, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "BareSign", Input: `-`, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "OutOfRange", Input: `1e999`, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "OutOfRangeThenTrailing", Input: `1e999 1`, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "OutOfRangeThenError", Input: `[1e999, x`, Err: jparse.UnexpectedToken, Offset: 1},
	{Name: "OutOfRangeElement", Input: `[1, -1e400]`, Err: jparse.UnexpectedToken, Offset: 4},
	{Name: "BadElement", Input: `[true, nope]`, Err: jparse.UnexpectedToken, Offset: 7},
	{Name: "StringForComma", Input: `[1 "x"`, Err: jparse.UnexpectedToken, Offset: 3},
	{Name: "OpenStringForComma", Input: `[1 "x`, Err: jparse.UnexpectedToken, Offset: 3},
	{Name: "OpenStringForMemberComma", Input: `{"a":1 "b`, Err: jparse.UnexpectedToken, Offset: 7},
	{Name: "OpenStringForColon", Input: `{"a" "b`, Err: jparse.UnexpectedToken, Offset: 5},
	{Name: "OpenString", Input: `"abc`, Err: jparse.UnterminatedString, Offset: 0},
	{Name: "OpenInnerString", Input: `["ok", "abc`, Err: jparse.UnterminatedString, Offset: 7},
	{Name: "OpenKey", Input: `{"abc`, Err: jparse.UnterminatedString, Offset: 1},
	{Name: "OpenArray", Input: `[`, Err: jparse.UnterminatedContainer, Offset: 1, Delim: '['},
	{Name: "OpenArrayItems", Input: `[1,2,3`, Err: jparse.UnterminatedContainer, Offset: 6, Delim: '['},
	{Name: "OpenArrayComma", Input: "[1,\n", Err: jparse.UnterminatedContainer, Offset: 4, Delim: '['},
	{Name: "OpenObject", Input: `{"a":1`, Err: jparse.UnterminatedContainer, Offset: 6, Delim: '{'},
	{Name: "OpenObjectKey", Input: `{"a"`, Err: jparse.UnterminatedContainer, Offset: 4, Delim: '{'},
	{Name: "OpenObjectColon", Input: `{"a":`, Err: jparse.UnterminatedContainer, Offset: 5, Delim: '{'},
	{Name: "OpenInner", Input: `{"a":[1,{}`, Err: jparse.UnterminatedContainer, Offset: 10, Delim: '['},
	{Name: "Trailing", Input: `1 2`, Err: jparse.TrailingContent, Offset: 2},
	{Name: "TrailingDot", Input: `123.`, Err: jparse.TrailingContent, Offset: 3},
	{Name: "TrailingExp", Input: `1e`, Err: jparse.TrailingContent, Offset: 1},
	{Name: "TrailingWord", Input: `nullx`, Err: jparse.TrailingContent, Offset: 4},
	{Name: "TrailingClose", Input: `[1]]`, Err: jparse.TrailingContent, Offset: 3},
	{Name: "TrailingValue", Input: "{} \n []", Err: jparse.TrailingContent, Offset: 5},

	// Depth limits.
	{Name: "AtLimit", Input: `[[[1]]]`, MaxDepth: 3, Want: jparse.Array{
		jparse.Array{jparse.Array{jparse.Integer(1)}},
	}},
	{Name: "OverLimit", Input: `[[[[1]]]]`, MaxDepth: 3, Err: jparse.DepthExceeded, Offset: 3},
	{Name: "ObjectOverLimit", Input: `{"a":{"b":[]}}`, MaxDepth: 2, Err: jparse.DepthExceeded, Offset: 10},
	{Name: "ErrorBeforeLimit", Input: `[x, [[[[`, MaxDepth: 3, Err: jparse.UnexpectedToken, Offset: 1},
	{Name: "RangeErrorBeforeLimit", Input: `[1e999, [[[[`, MaxDepth: 3, Err: jparse.UnexpectedToken, Offset: 1},
	{Name: "DeepArray", Input: strings.Repeat("[", 100000), Err: jparse.DepthExceeded, Offset: jparse.DefaultMaxDepth},
	{Name: "DeepObject", Input: strings.Repeat(`{"a":`, 100000), Err: jparse.DepthExceeded, Offset: 5 * jparse.DefaultMaxDepth},

	// Object-only documents.
	{Name: "ObjectOnly", Input: ` {"a": [1]} `, ObjectOnly: true, Want: jparse.Object{
		jparse.Field("a", jparse.Array{jparse.Integer(1)}),
	}},
	{Name: "ObjectOnlyEmpty", Input: `{}`, ObjectOnly: true, Want: jparse.Object{}},
	{Name: "ObjectOnlyArray", Input: `[1]`, ObjectOnly: true, Err: jparse.UnexpectedToken, Offset: 0},
	{Name: "ObjectOnlyScalar", Input: `  1`, ObjectOnly: true, Err: jparse.UnexpectedToken, Offset: 2},
	{Name: "ObjectOnlyTrailing", Input: `{} x`, ObjectOnly: true, Err: jparse.TrailingContent, Offset: 3},
	{Name: "ObjectOnlyEmptyInput", Input: ``, ObjectOnly: true, Err: jparse.EmptyInput, Offset: 0},
	{Name: "ObjectOnlyOpenString", Input: ` "abc`, ObjectOnly: true, Err: jparse.UnexpectedToken, Offset: 1},
}

// RunContract runs each of the contract Cases as a subtest, using a fresh
// parser from newParser for each.
func RunContract(t *testing.T, newParser func() Parser) {
	t.Helper()
	for _, tc := range Cases {
		t.Run(tc.Name, func(t *testing.T) {
			p := newParser()
			p.RequireObject(tc.ObjectOnly)
			if tc.MaxDepth > 0 {
				p.SetMaxDepth(tc.MaxDepth)
			}
			CheckCase(t, p, tc)
		})
	}
}

// CheckCase checks the result of parsing the input of tc with p.
func CheckCase(t *testing.T, p jparse.DocumentParser, tc Case) {
	t.Helper()
	got, err := p.Parse(tc.Input)
	if tc.Err == 0 {
		if err != nil {
			t.Fatalf("Parse %#q: unexpected error: %v", clip(tc.Input), err)
		}
		if diff := cmp.Diff(tc.Want, got); diff != "" {
			t.Errorf("Parse %#q: wrong value (-want, +got):\n%s", clip(tc.Input), diff)
		}
		return
	}

	var perr *jparse.ParseError
	if err == nil {
		t.Fatalf("Parse %#q: got %v, want error %v", clip(tc.Input), got, tc.Err)
	} else if !errors.As(err, &perr) {
		t.Fatalf("Parse %#q: error has type %T, want *ParseError", clip(tc.Input), err)
	} else if got != nil {
		t.Errorf("Parse %#q: got partial value %v with error", clip(tc.Input), got)
	}
	if !errors.Is(err, tc.Err) {
		t.Errorf("Parse %#q: got error %v, want kind %v", clip(tc.Input), err, tc.Err)
	}
	if perr.Offset != tc.Offset {
		t.Errorf("Parse %#q: error at offset %d, want %d (%v)", clip(tc.Input), perr.Offset, tc.Offset, err)
	}
	if tc.Delim != 0 && perr.Delimiter != tc.Delim {
		t.Errorf("Parse %#q: delimiter %q, want %q", clip(tc.Input), perr.Delimiter, tc.Delim)
	}
	t.Logf("Parse %#q: got expected error: %v", clip(tc.Input), err)
}

// clip truncates long inputs for logging.
func clip(s string) string {
	const maxLen = 40
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
