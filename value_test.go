// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse_test

import (
	"testing"

	"github.com/creachadair/jparse"
	"github.com/google/go-cmp/cmp"
)

func TestString(t *testing.T) {
	tests := []struct {
		input jparse.Value
		want  string
	}{
		{jparse.Null{}, "Null"},

		{jparse.Bool(false), "Boolean(false)"},
		{jparse.Bool(true), "Boolean(true)"},

		{jparse.String(""), `String("")`},
		{jparse.String(`a \t b`), `String("a \\t b")`},

		{jparse.Number(-0.00239), `Number(-0.00239)`},
		{jparse.Number(123.45), `Number(123.45)`},

		{jparse.Integer(0), `Integer(0)`},
		{jparse.Integer(-25), `Integer(-25)`},

		{jparse.Array{}, `Array([])`},
		{jparse.Array{
			jparse.Bool(true),
			jparse.Integer(199),
		}, `Array([Boolean(true), Integer(199)])`},

		{jparse.Object{}, `Object({})`},
		{jparse.Object{
			jparse.Field("name", jparse.String("Dennis")),
			jparse.Field("marks", jparse.Array{jparse.Integer(90), jparse.Number(85.5)}),
		}, `Object({"name": String("Dennis"), "marks": Array([Integer(90), Number(85.5)])})`},
	}
	for _, test := range tests {
		if got := test.input.String(); got != test.want {
			t.Errorf("Input: %#v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestKind(t *testing.T) {
	v := jparse.MustParse(`[null, true, 1, 1.5, "s", [], {}]`)
	var got []string
	for _, elt := range v.(jparse.Array) {
		got = append(got, elt.Kind().String())
	}
	want := []string{"null", "boolean", "integer", "number", "string", "array", "object"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Kinds (-want, +got):\n%s", diff)
	}
	if got := jparse.Kind(99).String(); got != "invalid" {
		t.Errorf("Kind(99): got %q, want invalid", got)
	}
}

func TestNewObject(t *testing.T) {
	obj := jparse.NewObject(
		jparse.Field("x", jparse.Integer(1)),
		jparse.Field("y", jparse.Null{}),
		jparse.Field("x", jparse.String("last")),
	)
	want := jparse.Object{
		jparse.Field("x", jparse.String("last")),
		jparse.Field("y", jparse.Null{}),
	}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("NewObject (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, obj.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
	if m := obj.Find("y"); m == nil || m.Value != (jparse.Null{}) {
		t.Errorf(`Find("y"): got %v`, m)
	}
	if m := obj.Find("z"); m != nil {
		t.Errorf(`Find("z"): got %v, want nil`, m)
	}
	if obj.Len() != 2 {
		t.Errorf("Len: got %d, want 2", obj.Len())
	}
}

func TestUnescape(t *testing.T) {
	v := jparse.MustParse(`["tab\there", "plain", "bad\u00"]`).(jparse.Array)

	// The parsed values are raw.
	if got := v[0].(jparse.String); got != `tab\there` {
		t.Errorf("Raw value: got %#q", got)
	}
	if got, err := v[0].(jparse.String).Unescape(); err != nil || got != "tab\there" {
		t.Errorf("Unescape: got %q, %v; want %q, nil", got, err, "tab\there")
	}
	if got, err := v[1].(jparse.String).Unescape(); err != nil || got != "plain" {
		t.Errorf("Unescape: got %q, %v; want %q, nil", got, err, "plain")
	}
	if got, err := v[2].(jparse.String).Unescape(); err == nil {
		t.Errorf("Unescape: got %q, want error", got)
	}
}
