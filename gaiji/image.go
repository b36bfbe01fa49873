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

package gaiji

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"github.com/ianlewis/go-eplkup/font"
)

var errInvalidFormat = errors.New("invalid image format")

// Format is the encoding of inline glyph images.
type Format int

const (
	// PNG encodes images as PNG.
	PNG Format = iota

	// GIF encodes images as GIF.
	GIF

	// BMP encodes images as BMP.
	BMP
)

// ParseFormat parses "png", "gif" or "bmp".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	default:
		return PNG, fmt.Errorf("%w: %q", errInvalidFormat, s)
	}
}

// String implements [fmt.Stringer].
func (f Format) String() string {
	switch f {
	case GIF:
		return "gif"
	case BMP:
		return "bmp"
	default:
		return "png"
	}
}

func (f Format) imaging() imaging.Format {
	switch f {
	case GIF:
		return imaging.GIF
	case BMP:
		return imaging.BMP
	default:
		return imaging.PNG
	}
}

// encodeBitmap encodes b, scaled to height pixels when height is positive.
func encodeBitmap(b *font.Bitmap, height int, format Format) ([]byte, image.Rectangle, error) {
	var img image.Image = b.Image()
	if height > 0 && height != b.Height {
		img = imaging.Resize(img, 0, height, imaging.NearestNeighbor)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, format.imaging()); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("encoding %v glyph image: %w", format, err)
	}
	return buf.Bytes(), img.Bounds(), nil
}

// imageTag returns an HTML image tag embedding data.
func imageTag(data []byte, bounds image.Rectangle) string {
	mime := "application/octet-stream"
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		mime = kind.MIME.Value
	}
	return fmt.Sprintf(`<img src="data:%s;base64,%s" width="%d" height="%d"/>`,
		mime, base64.StdEncoding.EncodeToString(data), bounds.Dx(), bounds.Dy())
}
