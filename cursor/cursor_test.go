// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package cursor_test

import (
	"strings"
	"testing"

	"github.com/pcaressa/jstream"
	"github.com/pcaressa/jstream/cursor"
)

const testDoc = `{
  "name": "widget",
  "sizes": [1, 2.5, 10],
  "meta": {"tags": ["a", "b"], "live": true},
  "extra": null
}`

func parseRoot(t *testing.T) jstream.Value {
	t.Helper()
	buf, _, err := jstream.ParseReader(strings.NewReader(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return buf.Root()
}

func TestDown(t *testing.T) {
	root := parseRoot(t)

	tests := []struct {
		path []any
		want string
	}{
		{nil, `"widget"`}, // applied below to "name"
		{[]any{"name"}, `"widget"`},
		{[]any{"sizes", 1}, "2.5"},
		{[]any{"sizes", -1}, "10"},
		{[]any{"meta", "tags", 0}, `"a"`},
		{[]any{"meta", "live"}, "true"},
		{[]any{"meta", 0, 1}, `"b"`}, // object by pair index, then array
		{[]any{"extra"}, "null"},
	}
	for _, test := range tests {
		path := test.path
		if path == nil {
			path = []any{"name"}
		}
		c := cursor.New(root).Down(path...)
		if err := c.Err(); err != nil {
			t.Errorf("Down %v failed: %v", path, err)
			continue
		}
		if got := c.Value().JSON(); got != test.want {
			t.Errorf("Down %v: got %#q, want %#q", path, got, test.want)
		}
	}
}

func TestDownErrors(t *testing.T) {
	root := parseRoot(t)

	paths := [][]any{
		{"nonesuch"},
		{"name", "deeper"},     // cannot traverse a string
		{"sizes", 3},           // out of bounds
		{"sizes", -4},          // out of bounds backward
		{"meta", "tags", "x"},  // array traversed with a key
		{"sizes", 1.5},         // invalid element type
	}
	for _, path := range paths {
		c := cursor.New(root).Down(path...)
		if c.Err() == nil {
			t.Errorf("Down %v: got nil error, want failure", path)
		}
	}
}

func TestNavigation(t *testing.T) {
	root := parseRoot(t)
	c := cursor.New(root)

	if !c.AtOrigin() {
		t.Error("AtOrigin: got false, want true")
	}
	if got := c.Origin().Offset(); got != root.Offset() {
		t.Errorf("Origin: got offset %d, want %d", got, root.Offset())
	}

	c.Down("meta", "tags")
	if err := c.Err(); err != nil {
		t.Fatalf("Down failed: %v", err)
	}
	if got := len(c.Path()); got != 3 {
		t.Errorf("Path: got %d values, want 3", got)
	}

	c.Up()
	if got := c.Value().Tag(); got != jstream.Object {
		t.Errorf("After Up: got %v, want object", got)
	}

	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Error("Reset did not restore the origin")
	}
}

func TestPath(t *testing.T) {
	root := parseRoot(t)

	v, err := cursor.Path(root, "sizes", 0)
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if got := v.Float(); got != 1 {
		t.Errorf("Path value: got %v, want 1", got)
	}

	if _, err := cursor.Path(root, "sizes", 99); err == nil {
		t.Error("Path out of bounds: got nil error, want failure")
	}
}
