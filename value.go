// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"strconv"
	"strings"

	"github.com/creachadair/jparse/internal/escape"
	"go4.org/mem"
)

// Kind identifies the variant of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid kind
	NullKind                // constant: null
	BoolKind                // constant: true, false
	IntegerKind             // number: integer with no fraction or exponent
	NumberKind              // number: floating point
	StringKind              // quoted string
	ArrayKind               // [ ... ]
	ObjectKind              // { ... }
)

var kindNames = [...]string{
	Invalid:     "invalid",
	NullKind:    "null",
	BoolKind:    "boolean",
	IntegerKind: "integer",
	NumberKind:  "number",
	StringKind:  "string",
	ArrayKind:   "array",
	ObjectKind:  "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return kindNames[Invalid]
	}
	return kindNames[k]
}

// A Value is the result of parsing one syntactic unit of the input.
// The concrete type is one of Null, Bool, Integer, Number, String, Array, or
// Object.
//
// The String method of a Value renders a debugging representation, for
// example Array([Integer(1), Boolean(true)]). It is not valid parser input.
type Value interface {
	Kind() Kind
	String() string
}

// Null represents the null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

func (Null) String() string { return "Null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

func (b Bool) String() string { return "Boolean(" + strconv.FormatBool(bool(b)) + ")" }

// An Integer is a signed 64-bit integer value.
type Integer int64

// Kind satisfies the Value interface.
func (Integer) Kind() Kind { return IntegerKind }

func (z Integer) String() string { return "Integer(" + strconv.FormatInt(int64(z), 10) + ")" }

// A Number is a floating-point value.
type Number float64

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return NumberKind }

func (n Number) String() string {
	return "Number(" + strconv.FormatFloat(float64(n), 'g', -1, 64) + ")"
}

// A String is a string value. It holds the raw text found between the
// quotation marks of the input, without any decoding of escapes.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

func (s String) String() string { return "String(" + strconv.Quote(string(s)) + ")" }

// Unescape decodes the JSON escape sequences in s. Invalid escapes are
// replaced by the Unicode replacement rune. Unescape reports an error for an
// incomplete escape sequence.
func (s String) Unescape() (string, error) {
	return escape.Unquote(mem.S(string(s)))
}

// An Array is an ordered sequence of values.
type Array []Value

// Kind satisfies the Value interface.
func (Array) Kind() Kind { return ArrayKind }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteString("Array([")
	for i, v := range a {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("])")
	return sb.String()
}

// An Object is a collection of key-value members. The keys of an object are
// unique; members are kept in the order their keys first appeared.
type Object []*Member

// Kind satisfies the Value interface.
func (Object) Kind() Kind { return ObjectKind }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (o Object) String() string {
	var sb strings.Builder
	sb.WriteString("Object({")
	for i, m := range o {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(m.Key))
		sb.WriteString(": ")
		sb.WriteString(m.Value.String())
	}
	sb.WriteString("})")
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }

// NewObject constructs an Object from the given members. If a key occurs more
// than once, the last value for that key wins, and the member stays at the
// position where the key first occurred.
func NewObject(members ...*Member) Object {
	obj := make(Object, 0, len(members))
	var seen map[string]int
	for _, m := range members {
		if i, ok := seen[m.Key]; ok {
			obj[i] = &Member{Key: m.Key, Value: m.Value}
			continue
		}
		if seen == nil {
			seen = make(map[string]int)
		}
		seen[m.Key] = len(obj)
		obj = append(obj, m)
	}
	return obj
}
