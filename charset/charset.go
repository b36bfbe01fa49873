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

// Package charset converts text between EUC-JP and UTF-8.
//
// Conversion is strict: a byte sequence that the conversion tables cannot
// represent is an error rather than a replacement character. Glyph reference
// escapes in EUC-JP (see package glyph) are carried across as private use
// code points and back again.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/ianlewis/go-eplkup/glyph"
)

var (
	// ErrUnsupported indicates an unknown charset name.
	ErrUnsupported = errors.New("unsupported charset")

	// ErrUnrepresentable indicates a source sequence that cannot be converted.
	ErrUnrepresentable = errors.New("unrepresentable byte sequence")

	// ErrCapacity indicates the converted text does not fit the destination.
	ErrCapacity = errors.New("destination capacity exceeded")
)

// Charset is a supported character encoding.
type Charset int

const (
	// UTF8 is UTF-8.
	UTF8 Charset = iota

	// EUCJP is EUC-JP, the encoding used by the dictionary text.
	EUCJP
)

// String implements [fmt.Stringer].
func (c Charset) String() string {
	switch c {
	case UTF8:
		return "UTF-8"
	case EUCJP:
		return "EUC-JP"
	default:
		return fmt.Sprintf("Charset(%d)", int(c))
	}
}

// Converter converts text into a destination of bounded size.
type Converter struct {
	capacity int
}

// NewConverter returns a Converter whose output may not exceed capacity
// bytes. A capacity of zero or less means no limit.
func NewConverter(capacity int) *Converter {
	return &Converter{capacity: capacity}
}

// Convert converts src from one charset to another. The result replaces the
// contents of dst, reusing its storage where possible. src is converted in
// full; it may contain NUL bytes.
func (c *Converter) Convert(dst, src []byte, to, from Charset) ([]byte, error) {
	dst = dst[:0]

	var err error
	switch {
	case from == EUCJP && to == UTF8:
		dst, err = decodeEUCJP(dst, src)
	case from == UTF8 && to == EUCJP:
		dst, err = encodeEUCJP(dst, src)
	case from == UTF8 && to == UTF8:
		if !utf8.Valid(src) {
			err = fmt.Errorf("%w: invalid UTF-8", ErrUnrepresentable)
			break
		}
		dst = append(dst, src...)
	case from == EUCJP && to == EUCJP:
		if _, err = decodeEUCJP(nil, src); err == nil {
			dst = append(dst, src...)
		}
	default:
		err = fmt.Errorf("%w: %v to %v", ErrUnsupported, from, to)
	}
	if err != nil {
		return dst[:0], err
	}

	if c.capacity > 0 && len(dst) > c.capacity {
		return dst[:0], fmt.Errorf("%w: %d bytes, capacity %d", ErrCapacity, len(dst), c.capacity)
	}
	return dst, nil
}

// ToUTF8 converts EUC-JP text to UTF-8 without a size limit.
func ToUTF8(src []byte) ([]byte, error) {
	return decodeEUCJP(nil, src)
}

// FromUTF8 converts UTF-8 text to EUC-JP without a size limit.
func FromUTF8(src []byte) ([]byte, error) {
	return encodeEUCJP(nil, src)
}

func decodeEUCJP(dst, src []byte) ([]byte, error) {
	dec := japanese.EUCJP.NewDecoder()
	start := 0
	flush := func(end int) error {
		if start >= end {
			return nil
		}
		out, err := dec.Bytes(src[start:end])
		if err != nil {
			return fmt.Errorf("%w: offset %d: %w", ErrUnrepresentable, start, err)
		}
		// EUC-JP has no encoding for U+FFFD so any replacement character
		// marks a sequence the tables could not map.
		if bytes.ContainsRune(out, utf8.RuneError) {
			return fmt.Errorf("%w: near offset %d", ErrUnrepresentable, start)
		}
		dst = append(dst, out...)
		return nil
	}

	i := 0
	for i < len(src) {
		b := src[i]
		switch {
		case b == glyph.Escape:
			code, width, ok := glyph.ParseEscape(src[i:])
			if !ok {
				return dst, fmt.Errorf("%w: bad glyph escape at offset %d", ErrUnrepresentable, i)
			}
			if err := flush(i); err != nil {
				return dst, err
			}
			dst = utf8.AppendRune(dst, glyph.Rune(code, width))
			i += glyph.EscapeLen
			start = i
		case b < 0x80:
			i++
		case b == 0x8E:
			i += 2
		case b == 0x8F:
			i += 3
		case 0xA1 <= b && b <= 0xFE:
			i += 2
		default:
			return dst, fmt.Errorf("%w: byte %#x at offset %d", ErrUnrepresentable, b, i)
		}
	}
	if i > len(src) {
		return dst, fmt.Errorf("%w: truncated sequence at end of input", ErrUnrepresentable)
	}
	if err := flush(len(src)); err != nil {
		return dst, err
	}
	return dst, nil
}

func encodeEUCJP(dst, src []byte) ([]byte, error) {
	if !utf8.Valid(src) {
		return dst, fmt.Errorf("%w: invalid UTF-8", ErrUnrepresentable)
	}

	enc := japanese.EUCJP.NewEncoder()
	start := 0
	flush := func(end int) error {
		if start >= end {
			return nil
		}
		out, err := enc.Bytes(src[start:end])
		if err != nil {
			return fmt.Errorf("%w: offset %d: %w", ErrUnrepresentable, start, err)
		}
		dst = append(dst, out...)
		return nil
	}

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if code, width, ok := glyph.FromRune(r); ok {
			if err := flush(i); err != nil {
				return dst, err
			}
			dst = glyph.AppendEscape(dst, code, width)
			start = i + size
		}
		i += size
	}
	if err := flush(len(src)); err != nil {
		return dst, err
	}
	return dst, nil
}
