// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package testutil

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jparse"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

// A Shape describes the structure of a value: its kind and, for arrays and
// objects, the shapes of its elements in order. Leaves have nil Children;
// containers have non-nil Children even when empty.
type Shape struct {
	Kind     jparse.Kind
	Children []Shape
}

// ShapeOf returns the shape of v.
func ShapeOf(v jparse.Value) Shape {
	switch t := v.(type) {
	case jparse.Array:
		s := Shape{Kind: jparse.ArrayKind, Children: make([]Shape, len(t))}
		for i, elt := range t {
			s.Children[i] = ShapeOf(elt)
		}
		return s
	case jparse.Object:
		s := Shape{Kind: jparse.ObjectKind, Children: make([]Shape, len(t))}
		for i, m := range t {
			s.Children[i] = ShapeOf(m.Value)
		}
		return s
	case nil:
		return Shape{Kind: jparse.Invalid}
	default:
		return Shape{Kind: v.Kind()}
	}
}

// HuJSONShape parses text with an independent JSON parser and returns the
// shape of the result. It is an oracle for documents from a Generator.
func HuJSONShape(text string) (Shape, error) {
	v, err := hujson.Parse([]byte(text))
	if err != nil {
		return Shape{}, err
	}
	return huShape(v), nil
}

func huShape(v hujson.Value) Shape {
	switch t := v.Value.(type) {
	case *hujson.Array:
		s := Shape{Kind: jparse.ArrayKind, Children: make([]Shape, len(t.Elements))}
		for i, elt := range t.Elements {
			s.Children[i] = huShape(elt)
		}
		return s
	case *hujson.Object:
		s := Shape{Kind: jparse.ObjectKind, Children: make([]Shape, len(t.Members))}
		for i, m := range t.Members {
			s.Children[i] = huShape(m.Value)
		}
		return s
	case hujson.Literal:
		if len(t) == 0 {
			return Shape{Kind: jparse.Invalid}
		}
		switch t[0] {
		case 'n':
			return Shape{Kind: jparse.NullKind}
		case 't', 'f':
			return Shape{Kind: jparse.BoolKind}
		case '"':
			return Shape{Kind: jparse.StringKind}
		}
		if strings.ContainsAny(string(t), ".eE") {
			return Shape{Kind: jparse.NumberKind}
		}
		return Shape{Kind: jparse.IntegerKind}
	}
	return Shape{Kind: jparse.Invalid}
}

// A Generator produces random well-formed documents along with their
// intended shapes. Documents use only standard JSON syntax, with distinct
// keys in each object and no escapes in strings.
type Generator struct {
	rng *rand.Rand

	MaxDepth int // maximum nesting of containers
	MaxWidth int // maximum elements per container
}

// NewGenerator constructs a Generator with a deterministic sequence of
// outputs for the given seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x5eed)),
		MaxDepth: 6,
		MaxWidth: 5,
	}
}

// Document returns the text of a new random document and its shape.
func (g *Generator) Document() (string, Shape) {
	var sb strings.Builder
	g.space(&sb)
	s := g.value(&sb, 0)
	g.space(&sb)
	return sb.String(), s
}

var (
	spaces   = []string{"", "", " ", "  ", "\n", "\t", "\r\n  "}
	alphabet = []rune("abcdefghijklmnopqrstuvwxyz ABCXYZ0123456789-_./:,[]{}éü世界")
)

func (g *Generator) space(sb *strings.Builder) { sb.WriteString(spaces[g.rng.IntN(len(spaces))]) }

func (g *Generator) value(sb *strings.Builder, depth int) Shape {
	n := 7
	if depth >= g.MaxDepth {
		n = 5 // leaves only
	}
	switch g.rng.IntN(n) {
	case 0:
		sb.WriteString("null")
		return Shape{Kind: jparse.NullKind}
	case 1:
		sb.WriteString(strconv.FormatBool(g.rng.IntN(2) == 0))
		return Shape{Kind: jparse.BoolKind}
	case 2:
		z := g.rng.Int64() >> g.rng.IntN(64)
		if g.rng.IntN(2) == 0 {
			z = -z
		}
		sb.WriteString(strconv.FormatInt(z, 10))
		return Shape{Kind: jparse.IntegerKind}
	case 3:
		if g.rng.IntN(2) == 0 {
			fmt.Fprintf(sb, "%d.%d", g.rng.IntN(2000)-1000, g.rng.IntN(1000))
		} else {
			fmt.Fprintf(sb, "%dE%d", g.rng.IntN(100), g.rng.IntN(40)-20)
		}
		return Shape{Kind: jparse.NumberKind}
	case 4:
		sb.WriteByte('"')
		for range g.rng.IntN(12) {
			sb.WriteRune(alphabet[g.rng.IntN(len(alphabet))])
		}
		sb.WriteByte('"')
		return Shape{Kind: jparse.StringKind}
	case 5:
		s := Shape{Kind: jparse.ArrayKind, Children: []Shape{}}
		sb.WriteByte('[')
		for i := range g.rng.IntN(g.MaxWidth + 1) {
			if i > 0 {
				sb.WriteByte(',')
			}
			g.space(sb)
			s.Children = append(s.Children, g.value(sb, depth+1))
			g.space(sb)
		}
		sb.WriteByte(']')
		return s
	default:
		s := Shape{Kind: jparse.ObjectKind, Children: []Shape{}}
		sb.WriteByte('{')
		for i := range g.rng.IntN(g.MaxWidth + 1) {
			if i > 0 {
				sb.WriteByte(',')
			}
			g.space(sb)
			fmt.Fprintf(sb, `"k%d"`, i)
			g.space(sb)
			sb.WriteByte(':')
			g.space(sb)
			s.Children = append(s.Children, g.value(sb, depth+1))
			g.space(sb)
		}
		sb.WriteByte('}')
		return s
	}
}

// CheckGenerated parses n documents from a generator with the given seed
// using p, and checks that each result has the shape the generator intended,
// and the same shape an independent parser finds.
func CheckGenerated(t *testing.T, p jparse.DocumentParser, seed uint64, n int) {
	t.Helper()
	g := NewGenerator(seed)
	for i := range n {
		text, want := g.Document()
		v, err := p.Parse(text)
		if err != nil {
			t.Fatalf("Document %d: Parse %#q: unexpected error: %v", i, clip(text), err)
		}
		if diff := cmp.Diff(want, ShapeOf(v)); diff != "" {
			t.Fatalf("Document %d: Parse %#q: wrong shape (-want, +got):\n%s", i, text, diff)
		}
		hs, err := HuJSONShape(text)
		if err != nil {
			t.Fatalf("Document %d: hujson.Parse %#q: %v", i, clip(text), err)
		}
		if diff := cmp.Diff(hs, ShapeOf(v)); diff != "" {
			t.Errorf("Document %d: Parse %#q: disagrees with hujson (-hujson, +got):\n%s", i, text, diff)
		}
	}
}
