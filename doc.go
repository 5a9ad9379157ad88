// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

// Package jstream implements a JSON parser that materializes its input
// as a single contiguous buffer of machine words.
//
// # Parsing
//
// The parser pulls characters from a Source, a function returning the
// next input character or a negative value at end of stream, and
// appends a tagged binary encoding of the value to a growable Buffer.
// Use ParseReader to parse from an io.Reader:
//
//	buf, last, err := jstream.ParseReader(input)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// On success the caller owns the buffer; last is the first character
// following the value, which the parser leaves unconsumed and does not
// validate. On failure no buffer is returned and err has concrete type
// [*SyntaxError], carrying the error kind and the last character read.
//
// A Parser can be reused to read successive values from one source:
//
//	p := jstream.NewParser(src)
//	for {
//	   buf, err := p.Parse()
//	   ...
//	}
//
// # Encoding
//
// Every value occupies a run of words led by a tag word: null, true
// and false are a bare tag; a number is the tag followed by the bits
// of a float64; a string is the tag followed by its NUL-terminated
// bytes packed into words; arrays and objects are the tag, an element
// (or pair) count, and their children laid out consecutively. There
// are no end markers and no pointers: traversal is forward-only,
// driven entirely by tags and counts.
//
// String contents are stored exactly as they appear in the source.
// Escape sequences are recognized so that an escaped quote does not
// end the string, but they are not decoded; call [Value.Unescape] to
// decode them on demand.
//
// # Walking
//
// A Buffer is read through Value, a view of one encoded value at a
// word offset. Value's Dump method renders compact JSON text and
// returns the view of the following value; Skip computes that view
// without producing output:
//
//	root := buf.Root()
//	root.Dump(os.Stdout)
//
// Both traversals trust the buffer; they are defined only for buffers
// produced by a successful parse.
package jstream
