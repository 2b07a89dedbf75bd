// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jparse"
	"github.com/fatih/color"
)

var (
	keyColor    = color.New(color.FgBlue, color.Bold)
	stringColor = color.New(color.FgGreen)
	numberColor = color.New(color.FgCyan)
	constColor  = color.New(color.FgMagenta)
)

// printValue writes an indented rendering of v to w, one array element or
// object member per line. Leaves use the debug form of jparse.Value.
func printValue(w io.Writer, v jparse.Value) error {
	bw := bufio.NewWriter(w)
	writeValue(bw, v, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

func writeValue(w *bufio.Writer, v jparse.Value, depth int) {
	indent := strings.Repeat("  ", depth+1)
	switch t := v.(type) {
	case jparse.Array:
		if len(t) == 0 {
			w.WriteString("Array([])")
			return
		}
		w.WriteString("Array([\n")
		for _, elt := range t {
			w.WriteString(indent)
			writeValue(w, elt, depth+1)
			w.WriteString(",\n")
		}
		w.WriteString(indent[2:] + "])")
	case jparse.Object:
		if len(t) == 0 {
			w.WriteString("Object({})")
			return
		}
		w.WriteString("Object({\n")
		for _, m := range t {
			w.WriteString(indent)
			w.WriteString(keyColor.Sprint(strconv.Quote(m.Key)))
			w.WriteString(": ")
			writeValue(w, m.Value, depth+1)
			w.WriteString(",\n")
		}
		w.WriteString(indent[2:] + "})")
	case jparse.String:
		w.WriteString(stringColor.Sprint(t.String()))
	case jparse.Integer, jparse.Number:
		w.WriteString(numberColor.Sprint(t.String()))
	default:
		w.WriteString(constColor.Sprint(v.String()))
	}
}
