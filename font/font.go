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

// Package font implements gaiji bitmap fonts.
//
// A font file holds the bitmaps of a contiguous run of gaiji codes of one
// width class. The file starts with an eight byte header:
//
//	magic   "EBFT"
//	width   glyph width in pixels (1 byte)
//	height  glyph height in pixels (1 byte)
//	start   first gaiji code, big-endian (2 bytes)
//
// followed by the glyph bitmaps in code order. Codes advance through cells
// 0x21-0x7E of a row before moving to the next row, as JIS codes do. Each
// bitmap is height rows of ceil(width/8) bytes, most significant bit first,
// a set bit being an inked pixel.
package font

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-eplkup/glyph"
)

// Magic is the font file signature.
const Magic = "EBFT"

const (
	headerSize = 8
	firstCell  = 0x21
	lastCell   = 0x7E
	rowCells   = lastCell - firstCell + 1
)

var (
	// ErrNoGlyph indicates that a font has no bitmap for a code.
	ErrNoGlyph = errors.New("no such glyph")

	errBadMagic  = errors.New("bad font magic")
	errBadHeader = errors.New("bad font header")
	errBadBitmap = errors.New("bad bitmap")
)

// Palette is the palette of images returned by [Bitmap.Image]: transparent
// background and black ink.
var Palette = color.Palette{color.Transparent, color.Black}

// Bitmap is a one bit per pixel glyph image.
type Bitmap struct {
	Width  int
	Height int

	// Rows holds Height rows of Stride bytes each.
	Rows []byte
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int {
	return (b.Width + 7) / 8
}

// At reports whether the pixel at x, y is inked.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Rows[y*b.Stride()+x/8]&(0x80>>(x%8)) != 0
}

// Image returns the bitmap as a paletted image using [Palette].
func (b *Bitmap) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), Palette)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.At(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}

// ParseHexRows builds a bitmap from one hexadecimal string per row, as
// written in glyph tables: "0ff0" is a 16 pixel row with its middle eight
// pixels inked.
func ParseHexRows(width int, rows []string) (*Bitmap, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", errBadBitmap, width)
	}
	b := &Bitmap{
		Width:  width,
		Height: len(rows),
	}
	stride := b.Stride()
	for i, row := range rows {
		data, err := hex.DecodeString(strings.TrimSpace(row))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", errBadBitmap, i, err)
		}
		if len(data) != stride {
			return nil, fmt.Errorf("%w: row %d has %d bytes, want %d", errBadBitmap, i, len(data), stride)
		}
		b.Rows = append(b.Rows, data...)
	}
	return b, nil
}

// Font is a set of glyph bitmaps for one width class.
type Font struct {
	width  int
	height int
	start  glyph.Code
	data   []byte
}

// New reads a font file from r.
func New(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	if len(data) < headerSize {
		return nil, errBadHeader
	}
	if !bytes.Equal(data[:4], []byte(Magic)) {
		return nil, errBadMagic
	}

	f := &Font{
		width:  int(data[4]),
		height: int(data[5]),
		start:  glyph.Code(data[6])<<8 | glyph.Code(data[7]),
		data:   data[headerSize:],
	}
	if f.width == 0 || f.height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", errBadHeader, f.width, f.height)
	}
	if cell := int(f.start & 0xFF); cell < firstCell || cell > lastCell {
		return nil, fmt.Errorf("%w: start code %v", errBadHeader, f.start)
	}
	return f, nil
}

// Open reads the font file at path.
func Open(path string) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening font: %w", err)
	}
	defer file.Close()

	return New(file)
}

// Width returns the glyph width in pixels.
func (f *Font) Width() int {
	return f.width
}

// Height returns the glyph height in pixels.
func (f *Font) Height() int {
	return f.height
}

// Start returns the first code in the font.
func (f *Font) Start() glyph.Code {
	return f.start
}

// Len returns the number of glyphs in the font.
func (f *Font) Len() int {
	return len(f.data) / f.glyphSize()
}

func (f *Font) glyphSize() int {
	return (f.width + 7) / 8 * f.height
}

// Bitmap returns the bitmap for code.
func (f *Font) Bitmap(code glyph.Code) (*Bitmap, error) {
	n, ok := Index(f.start, code)
	if !ok || n >= f.Len() {
		return nil, fmt.Errorf("%w: %v", ErrNoGlyph, code)
	}
	size := f.glyphSize()
	return &Bitmap{
		Width:  f.width,
		Height: f.height,
		Rows:   f.data[n*size : (n+1)*size],
	}, nil
}

// Index returns the position of code in a font starting at start.
func Index(start, code glyph.Code) (int, bool) {
	cell := int(code & 0xFF)
	if cell < firstCell || cell > lastCell || code < start {
		return 0, false
	}
	row := int(code>>8) - int(start>>8)
	n := row*rowCells + cell - int(start&0xFF)
	if n < 0 {
		return 0, false
	}
	return n, true
}

// Code returns the code at position n of a font starting at start. It is
// the inverse of [Index].
func Code(start glyph.Code, n int) glyph.Code {
	n += int(start&0xFF) - firstCell
	row := int(start>>8) + n/rowCells
	return glyph.Code(row<<8 | (firstCell + n%rowCells))
}

// Encode writes a font file holding bitmaps for consecutive codes starting at
// start. All bitmaps must have the given dimensions.
func Encode(w io.Writer, width, height int, start glyph.Code, bitmaps []*Bitmap) error {
	if width <= 0 || width > 0xFF || height <= 0 || height > 0xFF {
		return fmt.Errorf("%w: %dx%d", errBadHeader, width, height)
	}
	header := []byte(Magic)
	header = append(header, byte(width), byte(height), byte(start>>8), byte(start))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing font header: %w", err)
	}
	for i, b := range bitmaps {
		if b.Width != width || b.Height != height {
			return fmt.Errorf("%w: glyph %d is %dx%d", errBadBitmap, i, b.Width, b.Height)
		}
		if _, err := w.Write(b.Rows); err != nil {
			return fmt.Errorf("writing glyph %d: %w", i, err)
		}
	}
	return nil
}
