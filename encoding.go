// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

package jstream

import (
	"github.com/pcaressa/jstream/internal/escape"

	"go4.org/mem"
)

// Quote escapes src for inclusion in a JSON string value. It does not
// add the enclosing quotation marks.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes JSON string text, replacing escape sequences with
// their unescaped equivalents. src is the bare content without the
// enclosing quotation marks, the form Value.Text returns.
//
// Invalid escapes are replaced by the Unicode replacement rune;
// Unquote reports an error for an escape cut short by the end of the
// text.
func Unquote(src string) ([]byte, error) { return escape.Unquote(mem.S(src)) }

// Unescape decodes the escape sequences of a parsed string value,
// which the parser stores verbatim.
func (v Value) Unescape() ([]byte, error) { return Unquote(v.Text()) }
