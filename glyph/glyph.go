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

// Package glyph defines external glyph (gaiji) codes and how references to
// them travel through the text pipeline.
//
// While a raw entry is decoded, a gaiji reference is written into the EUC-JP
// stream as a four byte escape: the byte 0x80, which EUC-JP never uses, a
// width byte ('n' or 'w') and the big-endian glyph code. Once the stream is
// converted to UTF-8 the reference becomes a code point in a supplementary
// private use plane: plane 15 for narrow glyphs and plane 16 for wide glyphs,
// offset by the glyph code. The code point therefore carries its own width
// class.
package glyph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Escape is the first byte of a glyph reference in an EUC-JP stream.
const Escape byte = 0x80

// EscapeLen is the length in bytes of a glyph reference escape.
const EscapeLen = 4

const (
	narrowBase rune = 0xF0000
	wideBase   rune = 0x100000

	narrowByte = 'n'
	wideByte   = 'w'
)

var (
	errInvalidCode  = errors.New("invalid glyph code")
	errInvalidWidth = errors.New("invalid glyph width")
)

// Code is a gaiji code as it appears in the raw text: a row byte followed by
// a cell byte.
type Code uint16

// ParseCode parses a hexadecimal gaiji code such as "A121".
func ParseCode(s string) (Code, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidCode, s)
	}
	return Code(n), nil
}

// String returns the code as four upper case hex digits.
func (c Code) String() string {
	return fmt.Sprintf("%04X", uint16(c))
}

// Width is the rendering width class of a glyph.
type Width uint8

const (
	// Wide glyphs are full-width. Text outside of a narrow span is wide.
	Wide Width = iota

	// Narrow glyphs are half-width.
	Narrow
)

// ParseWidth parses "narrow" or "wide".
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(s) {
	case "narrow", "n":
		return Narrow, nil
	case "wide", "w":
		return Wide, nil
	default:
		return Wide, fmt.Errorf("%w: %q", errInvalidWidth, s)
	}
}

// String implements [fmt.Stringer].
func (w Width) String() string {
	if w == Narrow {
		return "narrow"
	}
	return "wide"
}

// Rune returns the private use code point that stands for the glyph.
func Rune(c Code, w Width) rune {
	if w == Narrow {
		return narrowBase + rune(c)
	}
	return wideBase + rune(c)
}

// FromRune reports whether r stands for a glyph and returns its code and
// width.
func FromRune(r rune) (Code, Width, bool) {
	switch {
	case r >= wideBase && r <= utf8.MaxRune:
		return Code(r - wideBase), Wide, true
	case r >= narrowBase && r < wideBase:
		return Code(r - narrowBase), Narrow, true
	}
	return 0, Wide, false
}

// AppendEscape appends the EUC-JP stream escape for the glyph to b.
func AppendEscape(b []byte, c Code, w Width) []byte {
	wb := byte(wideByte)
	if w == Narrow {
		wb = narrowByte
	}
	return append(b, Escape, wb, byte(c>>8), byte(c))
}

// ParseEscape decodes the escape at the start of b.
func ParseEscape(b []byte) (Code, Width, bool) {
	if len(b) < EscapeLen || b[0] != Escape {
		return 0, Wide, false
	}
	var w Width
	switch b[1] {
	case narrowByte:
		w = Narrow
	case wideByte:
		w = Wide
	default:
		return 0, Wide, false
	}
	return Code(b[2])<<8 | Code(b[3]), w, true
}
