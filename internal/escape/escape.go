// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON string text.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Quote escapes the text of src for inclusion in a JSON string.
// Quotation marks are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r == '"' || r == '\\':
			buf = append(buf, '\\', byte(r))
		case r >= ' ' && r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		case r == '\b':
			buf = append(buf, `\b`...)
		case r == '\f':
			buf = append(buf, `\f`...)
		case r == '\n':
			buf = append(buf, `\n`...)
		case r == '\r':
			buf = append(buf, `\r`...)
		case r == '\t':
			buf = append(buf, `\t`...)
		case r < ' ', r == '\u2028', r == '\u2029', r == utf8.RuneError:
			// Controls without a short form, the line and paragraph
			// separators, and the replacement rune are written as
			// Unicode escapes.
			buf = append(buf, fmt.Sprintf(`\u%04x`, r)...)
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}

// Unquote decodes JSON string text with its enclosing quotation marks
// already removed. Escape sequences are replaced by their values;
// invalid escapes become the Unicode replacement rune; an escape cut
// short by the end of the text is an error.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := hex4(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				dec = utf8.AppendRune(dec, utf8.RuneError)
			} else {
				dec = utf8.AppendRune(dec, v)
			}
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
	}
}

// hex4 decodes exactly four hexadecimal digits.
func hex4(data mem.RO) (rune, error) {
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		switch {
		case '0' <= b && b <= '9':
			v = v<<4 + rune(b-'0')
		case 'a' <= b && b <= 'f':
			v = v<<4 + rune(b-'a'+10)
		case 'A' <= b && b <= 'F':
			v = v<<4 + rune(b-'A'+10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
