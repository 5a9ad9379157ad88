// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

// Package cursor implements traversal over the values encoded in a
// jstream buffer.
package cursor

import (
	"fmt"

	"github.com/pcaressa/jstream"
)

// Path traverses a sequential path into the structure of v, where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and
// retrieving its value.
func Path(v jstream.Value, path ...any) (jstream.Value, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return jstream.Value{}, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of an
// encoded value. Navigation is pure traversal: the cursor records
// word offsets into the buffer and reaches children by skipping over
// their siblings; it never copies or decodes values.
type Cursor struct {
	org jstream.Value
	stk []jstream.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin jstream.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() jstream.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() jstream.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the
// current location in c.
func (c *Cursor) Path() []jstream.Value {
	return append([]jstream.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting
// from the current value. If the path is valid the cursor stops on
// the element reached; otherwise traversal stops where it failed and
// an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the current value must be an object,
// and the string selects the value paired with the member of that
// name. Keys are compared as stored, undecoded.
//
// If a path element is an integer, the current value must be an array
// or an object, and the integer selects an element (for objects, the
// value of a pair) by index. Negative indices count backward from the
// end (-1 is last, -2 second last). An error is reported if the index
// is out of bounds.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.Tag() != jstream.Object {
				return c.setErrorf("cannot traverse %v with %q", cur.Tag(), t)
			}
			v, ok := cur.Field(t)
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(v)

		case int:
			switch cur.Tag() {
			case jstream.Array:
				i, ok := fixBound(cur.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, cur.Len())
				}
				cur = c.push(cur.At(i))
			case jstream.Object:
				i, ok := fixBound(cur.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, cur.Len())
				}
				_, val := cur.Pair(i)
				cur = c.push(val)
			default:
				return c.setErrorf("cannot traverse %v with %v", cur.Tag(), t)
			}

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v jstream.Value) jstream.Value {
	c.stk = append(c.stk, v)
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
