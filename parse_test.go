// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jparse_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/internal/testutil"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestContract(t *testing.T) {
	testutil.RunContract(t, func() testutil.Parser { return jparse.NewParser() })
}

func TestGenerated(t *testing.T) {
	testutil.CheckGenerated(t, jparse.NewParser(), 20211021, 500)
}

func TestParseDefaults(t *testing.T) {
	tests := []struct {
		input string
		want  jparse.Value
	}{
		{"null", jparse.Null{}},
		{"true", jparse.Bool(true)},
		{"false", jparse.Bool(false)},
		{"123", jparse.Integer(123)},
		{"-123", jparse.Integer(-123)},
		{"123.45", jparse.Number(123.45)},
		{"[1,2,3]", jparse.Array{jparse.Integer(1), jparse.Integer(2), jparse.Integer(3)}},
		{"[]", jparse.Array{}},
		{`{"a":1,"b":2}`, jparse.Object{
			jparse.Field("a", jparse.Integer(1)),
			jparse.Field("b", jparse.Integer(2)),
		}},
		{"{}", jparse.Object{}},
	}
	for _, test := range tests {
		got, err := jparse.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse %#q: (-want, +got)\n%s", test.input, diff)
		}
	}
}

// Regression: a naive ordering of integer before number would parse the
// integer part of a fraction and leave the rest unconsumed.
func TestIntegerLookahead(t *testing.T) {
	for _, input := range []string{"123.45", "1e5", "1E5", "-7.0", "0.5", "[2.5]", `{"x":3e-1}`} {
		v, err := jparse.Parse(input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", input, err)
			continue
		}
		if strings.Contains(v.String(), "Integer") {
			t.Errorf("Parse %#q: got %v, want a Number", input, v)
		}
	}
}

func TestParseErrorText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		found    string
		estr     string
	}{
		{`{"a": }`, "value", `'}'`, `at 1:6: expected value, got '}'`},
		{`[1 2]`, `"," or "]"`, `'2'`, `at 1:3: expected "," or "]", got '2'`},
		{"{\n\"a\" 1}", `":"`, `'1'`, `at 2:4: expected ":", got '1'`},
		{`{"a":1,}`, "string", `'}'`, `at 1:7: expected string, got '}'`},
		{`@`, "value", `'@'`, `at 1:0: expected value, got '@'`},
		{`[é]`, "value", `'é'`, `at 1:1: expected value, got 'é'`},
	}
	for _, test := range tests {
		_, err := jparse.Parse(test.input)
		var perr *jparse.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse %#q: got error %v, want *ParseError", test.input, err)
			continue
		}
		if perr.Kind != jparse.UnexpectedToken {
			t.Errorf("Parse %#q: got kind %v, want %v", test.input, perr.Kind, jparse.UnexpectedToken)
		}
		if perr.Expected != test.expected {
			t.Errorf("Parse %#q: expected %q, want %q", test.input, perr.Expected, test.expected)
		}
		if perr.Found != test.found {
			t.Errorf("Parse %#q: found %q, want %q", test.input, perr.Found, test.found)
		}
		if got := err.Error(); got != test.estr {
			t.Errorf("Parse %#q: error %q, want %q", test.input, got, test.estr)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "at 1:0: empty input"},
		{"[1,\n2", `at 2:1: missing close for '['`},
		{`"abc`, "at 1:0: unterminated string"},
		{"1\n\n x", "at 3:1: unexpected content after value"},
		{strings.Repeat("[", 2000), "at 1:1000: depth exceeded"},
	}
	for _, test := range tests {
		_, err := jparse.Parse(test.input)
		if err == nil {
			t.Errorf("Parse %#q: got nil, want error", test.input)
		} else if got := err.Error(); got != test.want {
			t.Errorf("Parse %#q: error %q, want %q", test.input, got, test.want)
		}
	}
}

func TestClampDepth(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-5, jparse.DefaultMaxDepth},
		{0, jparse.DefaultMaxDepth},
		{1, 1},
		{250, 250},
		{jparse.MaxDepthLimit, jparse.MaxDepthLimit},
		{jparse.MaxDepthLimit + 1, jparse.MaxDepthLimit},
		{1 << 30, jparse.MaxDepthLimit},
	}
	for _, tc := range tests {
		if got := jparse.ClampDepth(tc.n); got != tc.want {
			t.Errorf("ClampDepth(%d): got %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestParserSettings(t *testing.T) {
	p := jparse.NewParser()
	if got := p.MaxDepth(); got != jparse.DefaultMaxDepth {
		t.Errorf("Default MaxDepth: got %d, want %d", got, jparse.DefaultMaxDepth)
	}
	if p.ObjectOnly() {
		t.Error("Default ObjectOnly: got true, want false")
	}

	p.SetMaxDepth(5)
	if got := p.MaxDepth(); got != 5 {
		t.Errorf("MaxDepth: got %d, want 5", got)
	}
	p.SetMaxDepth(0)
	if got := p.MaxDepth(); got != jparse.DefaultMaxDepth {
		t.Errorf("MaxDepth after reset: got %d, want %d", got, jparse.DefaultMaxDepth)
	}
	p.SetMaxDepth(1 << 30)
	if got := p.MaxDepth(); got != jparse.MaxDepthLimit {
		t.Errorf("MaxDepth above limit: got %d, want %d", got, jparse.MaxDepthLimit)
	}

	// A parser with a large limit can handle deep inputs without trouble.
	p.SetMaxDepth(50000)
	const depth = 40000
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	v, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse deep array: unexpected error: %v", err)
	}
	for i := 0; i < depth-1; i++ {
		v = v.(jparse.Array)[0]
	}
	if diff := cmp.Diff(jparse.Array{}, v); diff != "" {
		t.Errorf("Innermost value (-want, +got):\n%s", diff)
	}
}

func TestMustParse(t *testing.T) {
	if got := jparse.MustParse(" true "); got != jparse.Bool(true) {
		t.Errorf("MustParse: got %v, want true", got)
	}
	v := mtest.MustPanic(t, func() { jparse.MustParse("[") })
	if err, ok := v.(error); !ok || !errors.Is(err, jparse.UnterminatedContainer) {
		t.Errorf("MustParse panic: got %v, want %v", v, jparse.UnterminatedContainer)
	}
}

func TestConcurrentParse(t *testing.T) {
	p := jparse.NewParser()
	done := make(chan error)
	for i := range 8 {
		go func() {
			g := testutil.NewGenerator(uint64(i))
			for range 50 {
				text, _ := g.Document()
				if _, err := p.Parse(text); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for range 8 {
		if err := <-done; err != nil {
			t.Errorf("Parse: unexpected error: %v", err)
		}
	}
}
