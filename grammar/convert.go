// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package grammar

import (
	"strconv"
	"strings"

	"github.com/creachadair/jparse"
)

// convert returns the jparse.Value corresponding to v. The cursor c spans the
// complete input, and is used to report errors.
func (v *value) convert(c *jparse.Cursor) (jparse.Value, error) {
	switch {
	case v.Null:
		return jparse.Null{}, nil
	case v.Bool != nil:
		return jparse.Bool(*v.Bool), nil
	case v.Number != nil:
		if n, ok := convertNumber(*v.Number); ok {
			return n, nil
		}
		c.Restore(jparse.Checkpoint(v.Pos.Offset))
		return nil, c.Unexpected("value") // out of range
	case v.String != nil:
		s := *v.String
		return jparse.String(s[1 : len(s)-1]), nil
	case v.Array != nil:
		return v.Array.convert(c)
	case v.Object != nil:
		return v.Object.convert(c)
	}
	panic("grammar: empty value node")
}

func (a *array) convert(c *jparse.Cursor) (jparse.Value, error) {
	arr := make(jparse.Array, len(a.Elements))
	for i, elt := range a.Elements {
		v, err := elt.convert(c)
		if err != nil {
			return nil, err
		}
		arr[i] = v
	}
	return arr, nil
}

func (o *object) convert(c *jparse.Cursor) (jparse.Value, error) {
	if len(o.Members) == 0 {
		return jparse.Object{}, nil
	}
	members := make([]*jparse.Member, len(o.Members))
	for i, m := range o.Members {
		v, err := m.Value.convert(c)
		if err != nil {
			return nil, err
		}
		members[i] = jparse.Field(m.Key[1:len(m.Key)-1], v)
	}
	return jparse.NewObject(members...), nil
}

// convertNumber converts the text of a number token. A token with no sign,
// fraction, or exponent that fits in 64 bits is an integer. Any other token in
// range is a floating-point number.
func convertNumber(s string) (jparse.Value, bool) {
	if !strings.HasPrefix(s, "+") && !strings.ContainsAny(s, ".eE") {
		if z, err := strconv.ParseInt(s, 10, 64); err == nil {
			return jparse.Integer(z), true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return jparse.Number(f), true
}
