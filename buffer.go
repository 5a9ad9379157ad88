// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package jstream

import (
	"errors"
	"math/bits"
)

// A Word is the fixed-width storage unit of an encoded buffer: the
// natural machine integer width. Tags, element counts, packed doubles
// and string bytes are all expressed in whole words. The layout is not
// a wire format; it is not portable across builds with a different
// word size.
type Word uint

const (
	wordBytes  = bits.UintSize / 8
	floatWords = (8 + wordBytes - 1) / wordBytes
)

// align returns the number of words needed to hold n bytes.
func align(n int) int { return (n + wordBytes - 1) / wordBytes }

var errNoSpace = errors.New("word limit exceeded")

// A Buffer is an append-only array of words holding exactly one
// encoded value once a parse has succeeded. No word is mutated after
// the parse that wrote it completes; walkers read the buffer through
// Value views.
type Buffer struct {
	w     []Word
	limit int // maximum words; 0 means unbounded
}

// Len reports the number of words in b.
func (b *Buffer) Len() int { return len(b.w) }

// Words returns the words of b. The slice aliases the buffer's
// backing store; the caller must not modify it.
func (b *Buffer) Words() []Word { return b.w }

// Root returns the view of the top-level value encoded in b.
func (b *Buffer) Root() Value { return Value{w: b.w} }

// grow appends n zeroed words to b and returns the offset of the
// first of them. Growth may relocate the backing array: offsets
// handed out earlier remain valid, addresses do not.
func (b *Buffer) grow(n int) (int, error) {
	if b.limit > 0 && len(b.w)+n > b.limit {
		return 0, errNoSpace
	}
	off := len(b.w)
	b.w = append(b.w, make([]Word, n)...)
	return off, nil
}

// pack stores the bytes of src into dst low byte first, leaving any
// trailing bytes of dst zero.
func pack(dst []Word, src []byte) {
	for i, c := range src {
		dst[i/wordBytes] |= Word(c) << (8 * (i % wordBytes))
	}
}
