// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package jstream

import (
	"bufio"
	"io"
)

// A Source is a pull-style character source: each call returns the
// next input character as a non-negative int, or a negative value to
// signal end of stream or a read error. The parser requires no
// pushback and no lookahead of it. The stream is taken to be single
// bytes, not Unicode runes.
type Source func() int

// ReaderSource adapts r to a Source delivering one byte per call.
func ReaderSource(r io.Reader) Source {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return func() int {
		b, err := br.ReadByte()
		if err != nil {
			return -1
		}
		return int(b)
	}
}

// A scanner tracks the most recently read character of a Source and
// the number of characters consumed so far. Every grammar routine of
// the parser is entered with the current character already read (in
// clast) and leaves clast on the first character after its own value;
// callers never re-peek.
type scanner struct {
	src   Source
	clast int // last character read; -1 at end of stream
	off   int // number of characters consumed
}

// newScanner seeds clast with a space so that the first trim reads.
func newScanner(src Source) scanner { return scanner{src: src, clast: ' '} }

// next reads one character from the source into clast.
func (s *scanner) next() int {
	s.clast = s.src()
	if s.clast < 0 {
		s.clast = -1
	} else {
		s.off++
	}
	return s.clast
}

// skipSpace reads until a non-whitespace character and returns it.
func (s *scanner) skipSpace() int {
	for isSpace(s.next()) {
	}
	return s.clast
}

// trim returns clast as is when it is not whitespace, otherwise the
// first non-whitespace character after it.
func (s *scanner) trim() int {
	if isSpace(s.clast) {
		return s.skipSpace()
	}
	return s.clast
}

func isSpace(c int) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// isTerm reports whether c may legally follow a literal or a number.
// End of stream counts as a terminator.
func isTerm(c int) bool {
	return c < 0 || isSpace(c) || c == ']' || c == '}' || c == ',' || c == ':'
}

func isDigit(c int) bool { return '0' <= c && c <= '9' }

// isNumChar reports whether c belongs to the character set a number
// is accumulated from. The set is deliberately loose; the accumulated
// text is validated as a whole by the float conversion.
func isNumChar(c int) bool {
	return isDigit(c) || c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E'
}
