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

// Package gaiji replaces external glyph (gaiji) references in converted text
// with their Unicode equivalents, a placeholder or an inline image.
//
// References arrive as private use code points that carry the glyph's code
// and width class; see package glyph. Replacement is idempotent: replacement
// text never holds glyph references and references without a table entry
// are passed through unchanged.
package gaiji

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-eplkup/font"
	"github.com/ianlewis/go-eplkup/glyph"
)

var (
	// ErrCapacity indicates that replaced text does not fit the output
	// capacity.
	ErrCapacity = errors.New("output capacity exceeded")

	errInvalidPolicy      = errors.New("invalid glyph policy")
	errInvalidPlaceholder = errors.New("invalid placeholder")
)

// Policy selects the replacement for glyphs without a Unicode equivalent.
type Policy int

const (
	// Placeholder replaces glyphs with a placeholder string.
	Placeholder Policy = iota

	// InlineImage replaces glyphs with an HTML image tag embedding the
	// glyph's bitmap. Glyphs without a bitmap get the placeholder.
	InlineImage
)

// ParsePolicy parses "placeholder" or "image", or their numbers "0" and
// "1".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "0", "placeholder":
		return Placeholder, nil
	case "1", "image":
		return InlineImage, nil
	default:
		return Placeholder, fmt.Errorf("%w: %q", errInvalidPolicy, s)
	}
}

// String implements [fmt.Stringer].
func (p Policy) String() string {
	if p == InlineImage {
		return "image"
	}
	return "placeholder"
}

// BitmapSource provides glyph bitmaps, typically from a subbook's fonts.
type BitmapSource interface {
	Bitmap(code glyph.Code, width glyph.Width) (*font.Bitmap, error)
}

// Options configures a [Substituter].
type Options struct {
	// Policy selects the replacement for glyphs without a Unicode
	// equivalent.
	Policy Policy

	// Placeholder replaces glyphs under the Placeholder policy.
	Placeholder string

	// Format is the inline image encoding.
	Format Format

	// ImageHeight scales inline images to the given height in pixels. Zero
	// keeps the bitmap's height.
	ImageHeight int

	// Capacity is the maximum size of replaced text in bytes. Zero means no
	// limit.
	Capacity int
}

// DefaultOptions are the default substitution options.
var DefaultOptions = &Options{
	Policy:      Placeholder,
	Placeholder: "?",
	Format:      PNG,
}

// Substituter replaces glyph references using a table. A Substituter is not
// safe for concurrent use.
type Substituter struct {
	table  *Table
	source BitmapSource
	opts   Options

	// images caches the image tags built for each glyph.
	images map[Key]string
}

// New returns a Substituter. source may be nil, in which case only bitmaps
// in the table are used for inline images.
func New(table *Table, source BitmapSource, opts *Options) (*Substituter, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	if err := validateUnicode(opts.Placeholder); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPlaceholder, err)
	}
	if opts.Policy != Placeholder && opts.Policy != InlineImage {
		return nil, fmt.Errorf("%w: %d", errInvalidPolicy, opts.Policy)
	}
	return &Substituter{
		table:  table,
		source: source,
		opts:   *opts,
		images: map[Key]string{},
	}, nil
}

// Policy returns the replacement policy for glyphs without a Unicode
// equivalent.
func (s *Substituter) Policy() Policy {
	return s.opts.Policy
}

// Replace appends src to dst[:0] with every glyph reference that has a table
// entry replaced, and returns the result. Bytes that are not valid UTF-8 are
// copied unchanged.
func (s *Substituter) Replace(dst, src []byte) ([]byte, error) {
	dst = dst[:0]
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		code, width, isGlyph := glyph.FromRune(r)
		if !isGlyph {
			dst = append(dst, src[i:i+size]...)
			i += size
			continue
		}

		if e, ok := s.table.Lookup(code, width); ok {
			repl, err := s.replacement(Key{Code: code, Width: width}, e)
			if err != nil {
				return dst[:0], err
			}
			dst = append(dst, repl...)
		} else {
			dst = append(dst, src[i:i+size]...)
		}
		i += size
	}
	if s.opts.Capacity > 0 && len(dst) > s.opts.Capacity {
		return dst[:0], fmt.Errorf("%w: %d bytes", ErrCapacity, s.opts.Capacity)
	}
	return dst, nil
}

// replacement returns the text that replaces the glyph k.
func (s *Substituter) replacement(k Key, e Entry) (string, error) {
	if e.Unicode != "" {
		return e.Unicode, nil
	}
	if s.opts.Policy != InlineImage {
		return s.opts.Placeholder, nil
	}
	if tag, ok := s.images[k]; ok {
		return tag, nil
	}

	b := e.Bitmap
	if b == nil && s.source != nil {
		var err error
		b, err = s.source.Bitmap(k.Code, k.Width)
		if err != nil && !errors.Is(err, font.ErrNoGlyph) {
			return "", fmt.Errorf("glyph %v: %w", k, err)
		}
	}

	tag := s.opts.Placeholder
	if b != nil {
		data, bounds, err := encodeBitmap(b, s.opts.ImageHeight, s.opts.Format)
		if err != nil {
			return "", fmt.Errorf("glyph %v: %w", k, err)
		}
		tag = imageTag(data, bounds)
	}
	s.images[k] = tag
	return tag, nil
}
