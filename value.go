// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package jstream

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Tag identifies the kind of an encoded value. It is the first word
// of every value in a buffer; the numeric tag values are part of the
// layout and must not change.
type Tag Word

// Constants defining the valid Tag values.
const (
	Null   Tag = iota // null
	True              // true
	False             // false
	Number            // IEEE double packed into words
	String            // NUL-terminated bytes packed into words
	Array             // element count, then the elements
	Object            // pair count, then key/value pairs
)

var tagStr = [...]string{"null", "true", "false", "number", "string", "array", "object"}

func (t Tag) String() string {
	if int(t) < len(tagStr) {
		return tagStr[t]
	}
	return fmt.Sprintf("invalid tag %d", Word(t))
}

// A Value is a read-only view of one encoded value inside a buffer,
// addressed by word offset. Values are cheap to copy. All methods
// trust the buffer: they are defined only over buffers produced by a
// successful Parse, and an unrecognized tag is treated as corruption,
// not as a reportable error.
type Value struct {
	w   []Word
	off int
}

// ValueAt returns the view of the value at word offset off of words.
// The words must hold well-formed encoded values, as produced by a
// successful parse; ValueAt performs no validation.
func ValueAt(words []Word, off int) Value { return Value{w: words, off: off} }

// Offset reports the word offset of v within its buffer.
func (v Value) Offset() int { return v.off }

// Tag reports the kind of v.
func (v Value) Tag() Tag { return Tag(v.w[v.off]) }

// Bool reports whether v is the true constant.
func (v Value) Bool() bool { return v.Tag() == True }

// Float returns the numeric content of v.
// It is meaningful only when Tag is Number.
func (v Value) Float() float64 {
	var u uint64
	for k := 0; k < floatWords; k++ {
		u |= uint64(v.w[v.off+1+k]) << (8 * wordBytes * k)
	}
	return math.Float64frombits(u)
}

// Text returns the string content of v exactly as it appeared in the
// source; escape sequences are not decoded (see Unescape).
// It is meaningful only when Tag is String.
func (v Value) Text() string {
	var sb strings.Builder
	for off := v.off + 1; ; off++ {
		w := v.w[off]
		for k := 0; k < wordBytes; k++ {
			c := byte(w >> (8 * k))
			if c == 0 {
				return sb.String()
			}
			sb.WriteByte(c)
		}
	}
}

// textLen reports the number of string bytes before the terminator.
func (v Value) textLen() int {
	n := 0
	for off := v.off + 1; ; off++ {
		w := v.w[off]
		for k := 0; k < wordBytes; k++ {
			if byte(w>>(8*k)) == 0 {
				return n
			}
			n++
		}
	}
}

// Len reports the number of elements of an array or of key/value
// pairs of an object.
func (v Value) Len() int { return int(v.w[v.off+1]) }

// End returns the word offset just past v. The offset is computed
// structurally, from tags, counts and string contents alone.
func (v Value) End() int {
	switch v.Tag() {
	case Null, True, False:
		return v.off + 1
	case Number:
		return v.off + 1 + floatWords
	case String:
		return v.off + 1 + align(v.textLen()+1)
	case Array:
		next := Value{v.w, v.off + 2}
		for i := 0; i < v.Len(); i++ {
			next = next.Skip()
		}
		return next.off
	case Object:
		next := Value{v.w, v.off + 2}
		for i := 0; i < v.Len(); i++ {
			next = next.Skip().Skip() // the key, then its value
		}
		return next.off
	}
	panic(fmt.Sprintf("jstream: %v at offset %d", v.Tag(), v.off))
}

// Skip returns the view of the value immediately following v,
// advancing past v without interpreting its content.
func (v Value) Skip() Value { return Value{v.w, v.End()} }

// At returns the i-th element of an array value. The cost is linear
// in the extent of the elements before it.
func (v Value) At(i int) Value {
	next := Value{v.w, v.off + 2}
	for ; i > 0; i-- {
		next = next.Skip()
	}
	return next
}

// Pair returns the key and value of the i-th pair of an object value.
func (v Value) Pair(i int) (key, val Value) {
	key = Value{v.w, v.off + 2}
	for ; i > 0; i-- {
		key = key.Skip().Skip()
	}
	return key, key.Skip()
}

// Field returns the value paired with the first key of an object
// whose text equals key, if any. Keys are compared undecoded, as
// stored.
func (v Value) Field(key string) (Value, bool) {
	k := Value{v.w, v.off + 2}
	for i := 0; i < v.Len(); i++ {
		val := k.Skip()
		if k.Text() == key {
			return val, true
		}
		k = val.Skip()
	}
	return Value{}, false
}

// Dump writes the compact JSON rendering of v to w, with no added
// whitespace and no trailing newline, and returns the view of the
// value following v, so that sibling values can be dumped in
// sequence. String contents are written back verbatim. An
// unrecognized tag means the buffer is corrupt: a notice is written
// to the sink and an error returned.
func (v Value) Dump(w io.Writer) (Value, error) {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	next, err := v.dump(bw)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return Value{v.w, next}, err
}

// dump renders v and returns the offset past it. Write errors are
// left to the bufio.Writer, whose Flush reports the first of them.
func (v Value) dump(w *bufio.Writer) (int, error) {
	switch v.Tag() {
	case Null:
		w.WriteString("null")
		return v.off + 1, nil
	case True:
		w.WriteString("true")
		return v.off + 1, nil
	case False:
		w.WriteString("false")
		return v.off + 1, nil
	case Number:
		w.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
		return v.off + 1 + floatWords, nil
	case String:
		w.WriteByte('"')
		w.WriteString(v.Text())
		w.WriteByte('"')
		return v.off + 1 + align(v.textLen()+1), nil
	case Array:
		w.WriteByte('[')
		next := Value{v.w, v.off + 2}
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				w.WriteByte(',')
			}
			off, err := next.dump(w)
			if err != nil {
				return off, err
			}
			next.off = off
		}
		w.WriteByte(']')
		return next.off, nil
	case Object:
		w.WriteByte('{')
		next := Value{v.w, v.off + 2}
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				w.WriteByte(',')
			}
			off, err := next.dump(w)
			if err != nil {
				return off, err
			}
			next.off = off
			w.WriteByte(':')
			off, err = next.dump(w)
			if err != nil {
				return off, err
			}
			next.off = off
		}
		w.WriteByte('}')
		return next.off, nil
	}
	fmt.Fprintf(w, "!%v at offset %d", v.Tag(), v.off)
	return v.off, fmt.Errorf("jstream: %v at offset %d", v.Tag(), v.off)
}

// JSON renders v as a string.
func (v Value) JSON() string {
	var sb strings.Builder
	v.Dump(&sb)
	return sb.String()
}
