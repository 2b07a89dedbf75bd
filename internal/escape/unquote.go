// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes backslash escape sequences in raw string text.
package escape

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the escape sequences in src, which must have its enclosing
// double quotation marks already removed.
//
// Invalid escapes, and unpaired UTF-16 surrogates, are replaced by the
// Unicode replacement rune. Unquote reports an error for an incomplete escape
// sequence.
func Unquote(src mem.RO) (string, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return src.StringCopy(), nil
	}

	var sb strings.Builder
	sb.Grow(src.Len())
	for {
		sb.WriteString(src.SliceTo(i).StringCopy())
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/':
			sb.WriteRune(r)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			u, rest, err := decodeU(src)
			if err != nil {
				return "", err
			}
			sb.WriteRune(u)
			src = rest
		default:
			sb.WriteRune(utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			sb.WriteString(src.StringCopy())
			return sb.String(), nil
		}
	}
}

// decodeU decodes the hex digits of a \u escape at the front of src, and
// combines it with a following \u escape if the two form a surrogate pair.
func decodeU(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	v, ok := parseHex(src.SliceTo(4))
	src = src.SliceFrom(4)
	if !ok {
		return utf8.RuneError, src, nil
	} else if !utf16.IsSurrogate(v) {
		return v, src, nil
	}

	// A high surrogate must be followed by an escaped low surrogate.
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if lo, ok := parseHex(src.Slice(2, 6)); ok {
			if r := utf16.DecodeRune(v, lo); r != utf8.RuneError {
				return r, src.SliceFrom(6), nil
			}
		}
	}
	return utf8.RuneError, src, nil
}

func parseHex(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
