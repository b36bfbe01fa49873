// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"

	"github.com/ianlewis/go-eplkup/glyph"
)

// EUCJP encodes s in EUC-JP.
func EUCJP(t testing.TB, s string) []byte {
	t.Helper()

	b, err := japanese.EUCJP.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encoding %q: %v", s, err)
	}
	return b
}

// Text builds raw subbook text for tests.
type Text struct {
	t testing.TB
	b []byte
}

// NewText returns an empty raw text builder.
func NewText(t testing.TB) *Text {
	t.Helper()
	return &Text{t: t}
}

// Bytes returns the raw text.
func (x *Text) Bytes() []byte {
	return x.b
}

// Raw appends raw bytes.
func (x *Text) Raw(b ...byte) *Text {
	x.b = append(x.b, b...)
	return x
}

// Control appends the control code with the given argument bytes.
func (x *Text) Control(code byte, args ...byte) *Text {
	x.b = append(x.b, 0x1F, code)
	x.b = append(x.b, args...)
	return x
}

// Chars appends s as JIS X 0208 characters. ASCII is widened to its
// full-width form first.
func (x *Text) Chars(s string) *Text {
	x.t.Helper()

	euc, err := japanese.EUCJP.NewEncoder().Bytes([]byte(width.Widen.String(s)))
	if err != nil {
		x.t.Fatalf("encoding %q: %v", s, err)
	}
	if len(euc)%2 != 0 {
		x.t.Fatalf("encoding %q: not JIS X 0208 text", s)
	}
	for i := 0; i < len(euc); i += 2 {
		if euc[i] < 0xA1 || euc[i+1] < 0xA1 {
			x.t.Fatalf("encoding %q: %#02x%02x is not JIS X 0208", s, euc[i], euc[i+1])
		}
		x.b = append(x.b, euc[i]&0x7F, euc[i+1]&0x7F)
	}
	return x
}

// Gaiji appends a gaiji code.
func (x *Text) Gaiji(code glyph.Code) *Text {
	x.b = append(x.b, byte(code>>8), byte(code))
	return x
}

// Narrow appends s inside a narrow span.
func (x *Text) Narrow(s string) *Text {
	x.t.Helper()
	return x.Control(0x04).Chars(s).Control(0x05)
}

// NarrowGaiji appends a gaiji code inside a narrow span.
func (x *Text) NarrowGaiji(code glyph.Code) *Text {
	return x.Control(0x04).Gaiji(code).Control(0x05)
}

// Emphasis appends s inside an emphasis decoration.
func (x *Text) Emphasis(s string) *Text {
	x.t.Helper()
	return x.Control(0xE0, 0x00, 0x03).Chars(s).Control(0xE1)
}

// Keyword appends s inside a keyword span.
func (x *Text) Keyword(s string) *Text {
	x.t.Helper()
	return x.Control(0x41, 0x01, 0x00).Chars(s).Control(0x61)
}

// Reference appends s inside a reference span pointing at page 123 offset 45.
func (x *Text) Reference(s string) *Text {
	x.t.Helper()
	return x.Control(0x42).Chars(s).Control(0x62, 0x00, 0x00, 0x01, 0x23, 0x00, 0x45)
}

// Subscript appends s inside a subscript span.
func (x *Text) Subscript(s string) *Text {
	x.t.Helper()
	return x.Control(0x06).Chars(s).Control(0x07)
}

// Superscript appends s inside a superscript span.
func (x *Text) Superscript(s string) *Text {
	x.t.Helper()
	return x.Control(0x0E).Chars(s).Control(0x0F)
}

// Newline appends a line break.
func (x *Text) Newline() *Text {
	return x.Control(0x0A)
}

// Begin appends the begin-of-text code.
func (x *Text) Begin() *Text {
	return x.Control(0x02)
}

// End appends the end-of-text code.
func (x *Text) End() *Text {
	return x.Control(0x03)
}
