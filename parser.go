// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go4.org/mem"
)

// ErrKind enumerates the ways a parse can fail. The set is closed and
// every kind is fatal to the parse in progress: there is no recovery
// and no partial result.
type ErrKind int

// Constants defining the valid ErrKind values.
const (
	NoError            ErrKind = iota
	OutOfMemory                // the word buffer could not grow
	InvalidValue               // unrecognized value start character
	InvalidNull                // misspelled null, or bad terminator
	InvalidFalse               // misspelled false, or bad terminator
	InvalidTrue                // misspelled true, or bad terminator
	InvalidNumber              // text does not convert to a double
	NumberTooLong              // number exceeds the staging buffer
	UnterminatedString         // end of stream inside a string
	MissingComma               // object pairs not separated by ","
	MissingColon               // object key not followed by ":"
	UnclosedBracket            // array not terminated by "]"
)

var kindStr = [...]string{
	NoError:            "no error",
	OutOfMemory:        "out of memory",
	InvalidValue:       "invalid value",
	InvalidNull:        "invalid null",
	InvalidFalse:       "invalid false",
	InvalidTrue:        "invalid true",
	InvalidNumber:      "invalid number",
	NumberTooLong:      "number too long",
	UnterminatedString: "unterminated string",
	MissingComma:       "missing comma",
	MissingColon:       "missing colon",
	UnclosedBracket:    "unclosed bracket",
}

func (k ErrKind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("error #%d", int(k))
}

// SyntaxError is the concrete type of all errors reported by Parse.
// Last is the last character read before the failure, negative at end
// of stream; Offset is the number of characters consumed.
type SyntaxError struct {
	Kind   ErrKind
	Last   int
	Offset int
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.Last < 0 {
		return fmt.Sprintf("offset %d: %s at end of input", e.Offset, e.Kind)
	}
	return fmt.Sprintf("offset %d: %s (last read %q)", e.Offset, e.Kind, rune(e.Last))
}

// A Parser reads JSON values from a character source, each into a
// fresh Buffer. A Parser may be reused: every call to Parse consumes
// the next value from the source, starting from the character left
// over by the previous call.
type Parser struct {
	scanner
	buf      *Buffer
	maxWords int
}

// NewParser constructs a parser that consumes characters from src.
func NewParser(src Source) *Parser { return &Parser{scanner: newScanner(src)} }

// SetMaxWords bounds the size of the buffers built by subsequent
// calls to Parse: a parse needing more than n words fails with
// OutOfMemory. Zero, the default, means no bound.
func (p *Parser) SetMaxWords(n int) { p.maxWords = n }

// Last reports the last character read from the source: after a
// successful Parse, the first character following the value (negative
// when the source is exhausted); after a failed one, the character on
// which the failure was detected.
func (p *Parser) Last() int { return p.clast }

// Parse reads one value and returns its encoded buffer, whose
// ownership passes to the caller. In case of error the returned
// error has concrete type [*SyntaxError] and no buffer is retained
// anywhere: the partially built one is released before returning.
func (p *Parser) Parse() (buf *Buffer, err error) {
	p.buf = &Buffer{limit: p.maxWords}
	defer p.recoverParseError(&err)

	p.trim()
	p.parseValue()
	buf, p.buf = p.buf, nil
	return buf, nil
}

// Parse reads a single JSON value from src and returns its encoded
// buffer together with the first character following the value. The
// trailing character is not validated; callers may inspect it to
// detect garbage after the value.
func Parse(src Source) (*Buffer, int, error) {
	p := NewParser(src)
	buf, err := p.Parse()
	return buf, p.Last(), err
}

// ParseReader reads a single JSON value from r.
func ParseReader(r io.Reader) (*Buffer, int, error) { return Parse(ReaderSource(r)) }

// recoverParseError converts the panic used for non-local error
// transfer back into an error and drops the partly built buffer. Any
// other panic is re-raised.
func (p *Parser) recoverParseError(errp *error) {
	if v := recover(); v != nil {
		serr, ok := v.(*SyntaxError)
		if !ok {
			panic(v)
		}
		p.buf = nil
		*errp = serr
	}
}

// fail aborts the entire parse; recoverParseError catches it at the
// top of Parse.
func (p *Parser) fail(kind ErrKind) {
	panic(&SyntaxError{Kind: kind, Last: p.clast, Offset: p.off})
}

// grow appends n words to the buffer under construction and returns
// their offset. The buffer may be relocated by the append, so only
// offsets are ever held across a call, never addresses.
func (p *Parser) grow(n int) int {
	off, err := p.buf.grow(n)
	if err != nil {
		p.fail(OutOfMemory)
	}
	return off
}

// Each parse routine below implements one grammar production. All are
// entered with the first character of their value already in clast and
// return the first non-whitespace character after the value.

// parseValue dispatches on the current character.
func (p *Parser) parseValue() int {
	switch c := p.clast; {
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseObject()
	case c == '"':
		return p.parseString()
	case c == '-' || isDigit(c):
		return p.parseNumber()
	case c == 'f':
		return p.parseLiteral(False, "alse", InvalidFalse)
	case c == 'n':
		return p.parseLiteral(Null, "ull", InvalidNull)
	case c == 't':
		return p.parseLiteral(True, "rue", InvalidTrue)
	}
	p.fail(InvalidValue)
	panic("unreachable")
}

// parseArray encodes tag, element count and the elements in order.
// The count word is updated in place before each element; it is
// addressed by offset because any element may relocate the buffer.
func (p *Parser) parseArray() int {
	off := p.grow(2)
	p.buf.w[off] = Word(Array)
	cnt := off + 1
	if p.skipSpace() != ']' {
		for {
			p.buf.w[cnt]++
			if p.parseValue() != ',' {
				break
			}
			p.skipSpace() // parseValue expects its first character read
		}
		if p.clast != ']' {
			p.fail(UnclosedBracket)
		}
	}
	return p.skipSpace()
}

// parseObject encodes tag, pair count and the key/value pairs in
// order. The count counts pairs, not words. Keys are parsed as plain
// values: the grammar requires strings but the encoder does not
// tag-check them.
func (p *Parser) parseObject() int {
	off := p.grow(2)
	p.buf.w[off] = Word(Object)
	cnt := off + 1
	if p.skipSpace() != '}' {
		for {
			p.buf.w[cnt]++
			if p.parseValue() != ':' {
				p.fail(MissingColon)
			}
			p.skipSpace()
			if p.parseValue() == '}' {
				break
			}
			if p.clast != ',' {
				p.fail(MissingComma)
			}
			p.skipSpace()
		}
	}
	return p.skipSpace()
}

// stageWords is the size of the string staging buffer. A string
// longer than the stage is flushed into the word buffer one full
// stage at a time, so string length is unbounded.
const stageWords = 16

// parseString encodes tag plus the NUL-terminated string bytes packed
// into words. The text is stored exactly as read: a backslash only
// keeps the following quote from terminating the string, the escape
// itself is copied through verbatim.
func (p *Parser) parseString() int {
	off := p.grow(1)
	p.buf.w[off] = Word(String)

	var stage [stageWords * wordBytes]byte
	var esc bool
	n := 0
	for {
		c := p.next()
		if c < 0 {
			p.fail(UnterminatedString)
		}
		if c == '"' && !esc {
			break
		}
		if esc {
			esc = false
		} else {
			esc = c == '\\'
		}
		stage[n] = byte(c)
		n++
		if n == len(stage) {
			off := p.grow(stageWords)
			pack(p.buf.w[off:off+stageWords], stage[:])
			n = 0
		}
	}
	// The tail words are zeroed by grow, which provides both the NUL
	// terminator and the padding.
	tail := p.grow(align(n + 1))
	pack(p.buf.w[tail:], stage[:n])
	return p.skipSpace()
}

// parseNumber accumulates the characters of a number into a fixed
// staging buffer, stopping at the first character outside the numeric
// set, and lets the float conversion validate the whole text.
func (p *Parser) parseNumber() int {
	var stage [128]byte
	stage[0] = byte(p.clast)
	i := 1
	for ; i < len(stage); i++ {
		if !isNumChar(p.next()) {
			break
		}
		stage[i] = byte(p.clast)
	}
	if i == len(stage) {
		p.fail(NumberTooLong)
	}
	d, err := strconv.ParseFloat(string(stage[:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.fail(InvalidNumber)
	}
	off := p.grow(1 + floatWords)
	p.buf.w[off] = Word(Number)
	u := math.Float64bits(d)
	for k := 0; k < floatWords; k++ {
		p.buf.w[off+1+k] = Word(u >> (8 * wordBytes * k))
	}
	return p.trim()
}

// parseLiteral consumes the remaining characters of one of the
// constants true, false or null, demands a terminator after them, and
// appends the single tag word. Anything else, including end of stream
// inside the literal, fails with the literal's own error kind.
func (p *Parser) parseLiteral(tag Tag, rest string, kind ErrKind) int {
	var got [4]byte
	for i := 0; i < len(rest); i++ {
		c := p.next()
		if c < 0 {
			p.fail(kind)
		}
		got[i] = byte(c)
	}
	if !mem.B(got[:len(rest)]).Equal(mem.S(rest)) || !isTerm(p.next()) {
		p.fail(kind)
	}
	off := p.grow(1)
	p.buf.w[off] = Word(tag)
	return p.trim()
}
