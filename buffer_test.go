// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package jstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferGrow(t *testing.T) {
	var b Buffer

	off, err := b.grow(2)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Equal(t, 2, b.Len())

	off, err = b.grow(3)
	require.NoError(t, err)
	assert.Equal(t, 2, off, "regions are appended in order")
	assert.Equal(t, 5, b.Len())

	for i, w := range b.Words() {
		assert.Zero(t, w, "word %d must be zeroed", i)
	}
}

func TestBufferLimit(t *testing.T) {
	b := Buffer{limit: 3}

	off, err := b.grow(2)
	require.NoError(t, err)
	b.w[off] = 1

	_, err = b.grow(2)
	require.ErrorIs(t, err, errNoSpace)
	assert.Equal(t, 2, b.Len(), "a failed grow must not change the buffer")
	assert.Equal(t, Word(1), b.w[0])

	_, err = b.grow(1)
	require.NoError(t, err, "growth up to the limit is allowed")
}

func TestPack(t *testing.T) {
	w := make([]Word, align(3+1))
	pack(w, []byte("abc"))

	assert.Equal(t, Word('a'), w[0]&0xff, "bytes are packed low first")
	assert.Equal(t, Word('b'), (w[0]>>8)&0xff)

	v := Value{w: append([]Word{Word(String)}, w...)}
	assert.Equal(t, "abc", v.Text(), "pack and Text are inverses")
	assert.Equal(t, 3, v.textLen())
}

func TestAlign(t *testing.T) {
	assert.Equal(t, 0, align(0))
	assert.Equal(t, 1, align(1))
	assert.Equal(t, 1, align(wordBytes))
	assert.Equal(t, 2, align(wordBytes+1))
}

func TestFloatPacking(t *testing.T) {
	var b Buffer
	off, err := b.grow(1 + floatWords)
	require.NoError(t, err)
	b.w[off] = Word(Number)

	u := uint64(0x3FD5555555555555) // 1/3
	for k := 0; k < floatWords; k++ {
		b.w[off+1+k] = Word(u >> (8 * wordBytes * k))
	}
	assert.Equal(t, 1.0/3.0, b.Root().Float())
}
