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

package gaiji_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/png"
	"regexp"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eplkup/font"
	"github.com/ianlewis/go-eplkup/gaiji"
	"github.com/ianlewis/go-eplkup/glyph"
	"github.com/ianlewis/go-eplkup/internal/testutil"
)

var (
	narrowA121 = string(glyph.Rune(0xA121, glyph.Narrow))
	wideA121   = string(glyph.Rune(0xA121, glyph.Wide))
	wideB021   = string(glyph.Rune(0xB021, glyph.Wide))
	wideB022   = string(glyph.Rune(0xB022, glyph.Wide))
	wideB023   = string(glyph.Rune(0xB023, glyph.Wide))
)

func testTable(t *testing.T) *gaiji.Table {
	t.Helper()

	table, err := gaiji.NewTable(map[gaiji.Key]gaiji.Entry{
		{Code: 0xA121, Width: glyph.Narrow}: {Unicode: "é"},
		{Code: 0xB021, Width: glyph.Wide}:   {Bitmap: testutil.MustBitmap(t, 8, "ff", "81")},
		{Code: 0xB022, Width: glyph.Wide}:   {},
		{Code: 0xB023, Width: glyph.Wide}:   {},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

// fontSource serves bitmaps for B022 only.
type fontSource struct {
	err error
}

func (s *fontSource) Bitmap(code glyph.Code, _ glyph.Width) (*font.Bitmap, error) {
	if s.err != nil {
		return nil, s.err
	}
	if code != 0xB022 {
		return nil, font.ErrNoGlyph
	}
	return &font.Bitmap{Width: 4, Height: 2, Rows: []byte{0xf0, 0x90}}, nil
}

func TestSubstituter_Replace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "no glyphs",
			src:      "辞書 <em>abc</em>",
			expected: "辞書 <em>abc</em>",
		},
		{
			name:     "unicode",
			src:      "caf" + narrowA121,
			expected: "café",
		},
		{
			name:     "placeholder",
			src:      "a" + wideB021 + "b" + wideB022,
			expected: "a?b?",
		},
		{
			name:     "unknown glyph",
			src:      "a" + wideA121 + "b",
			expected: "a" + wideA121 + "b",
		},
		{
			name:     "invalid utf-8",
			src:      "a\xffb\xe3\x81",
			expected: "a\xffb\xe3\x81",
		},
		{
			name:     "empty",
			src:      "",
			expected: "",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s, err := gaiji.New(testTable(t), nil, nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := s.Replace(nil, []byte(test.src))
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if diff := cmp.Diff(test.expected, string(got)); diff != "" {
				t.Fatalf("Replace (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSubstituter_idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		narrowA121 + wideA121 + wideB021 + wideB022 + wideB023,
		"x\xff" + wideA121 + "\xf3",
	}

	for _, policy := range []gaiji.Policy{gaiji.Placeholder, gaiji.InlineImage} {
		s, err := gaiji.New(testTable(t), &fontSource{}, &gaiji.Options{
			Policy:      policy,
			Placeholder: "?",
		})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for _, in := range inputs {
			once, err := s.Replace(nil, []byte(in))
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			once = bytes.Clone(once)
			twice, err := s.Replace(nil, once)
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if diff := cmp.Diff(string(once), string(twice)); diff != "" {
				t.Errorf("%v: Replace(%q) not idempotent (-once, +twice):\n%s", policy, in, diff)
			}
		}
	}
}

var imgRegex = regexp.MustCompile(`^<img src="data:([^;]+);base64,([^"]+)" width="(\d+)" height="(\d+)"/>$`)

func decodeTag(t *testing.T, tag string) (string, image.Image, string, string) {
	t.Helper()

	m := imgRegex.FindStringSubmatch(tag)
	if m == nil {
		t.Fatalf("not an image tag: %q", tag)
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding image: %v", err)
	}
	return m[1], img, m[3], m[4]
}

func TestSubstituter_image(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		opts   *gaiji.Options
		mime   string
		width  int
		height int
	}{
		{
			name:   "table bitmap",
			src:    wideB021,
			opts:   &gaiji.Options{Policy: gaiji.InlineImage},
			mime:   "image/png",
			width:  8,
			height: 2,
		},
		{
			name:   "font bitmap",
			src:    wideB022,
			opts:   &gaiji.Options{Policy: gaiji.InlineImage},
			mime:   "image/png",
			width:  4,
			height: 2,
		},
		{
			name:   "scaled",
			src:    wideB021,
			opts:   &gaiji.Options{Policy: gaiji.InlineImage, ImageHeight: 4},
			mime:   "image/png",
			width:  16,
			height: 4,
		},
		{
			name:   "gif",
			src:    wideB021,
			opts:   &gaiji.Options{Policy: gaiji.InlineImage, Format: gaiji.GIF},
			mime:   "image/gif",
			width:  8,
			height: 2,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s, err := gaiji.New(testTable(t), &fontSource{}, test.opts)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := s.Replace(nil, []byte(test.src))
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}

			mime, img, w, h := decodeTag(t, string(got))
			if mime != test.mime {
				t.Errorf("mime: want %q, got %q", test.mime, mime)
			}
			if got, want := img.Bounds().Size(), image.Pt(test.width, test.height); got != want {
				t.Errorf("image size: want %v, got %v", want, got)
			}
			if w != strconv.Itoa(test.width) || h != strconv.Itoa(test.height) {
				t.Errorf("tag size: want %dx%d, got %sx%s", test.width, test.height, w, h)
			}
		})
	}
}

func TestSubstituter_imageFallback(t *testing.T) {
	t.Parallel()

	s, err := gaiji.New(testTable(t), &fontSource{}, &gaiji.Options{
		Policy:      gaiji.InlineImage,
		Placeholder: "〓",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := s.Replace(nil, []byte(wideB023+narrowA121))
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if diff := cmp.Diff("〓é", string(got)); diff != "" {
		t.Fatalf("Replace (-want, +got):\n%s", diff)
	}
}

func TestSubstituter_sourceError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken font")
	s, err := gaiji.New(testTable(t), &fontSource{err: errBroken}, &gaiji.Options{
		Policy: gaiji.InlineImage,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Replace(nil, []byte(wideB022)); !errors.Is(err, errBroken) {
		t.Fatalf("Replace: want %v, got %v", errBroken, err)
	}
}

func TestSubstituter_capacity(t *testing.T) {
	t.Parallel()

	s, err := gaiji.New(testTable(t), nil, &gaiji.Options{
		Placeholder: "?",
		Capacity:    4,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := s.Replace(nil, []byte("ab"+wideB021+"c"))
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if diff := cmp.Diff("ab?c", string(got)); diff != "" {
		t.Fatalf("Replace (-want, +got):\n%s", diff)
	}

	if _, err := s.Replace(nil, []byte("abcde")); !errors.Is(err, gaiji.ErrCapacity) {
		t.Fatalf("Replace: want %v, got %v", gaiji.ErrCapacity, err)
	}
}

func TestNew_invalid(t *testing.T) {
	t.Parallel()

	if _, err := gaiji.New(nil, nil, &gaiji.Options{Placeholder: wideA121}); err == nil {
		t.Error("New with glyph placeholder: expected error")
	}
	if _, err := gaiji.New(nil, nil, &gaiji.Options{Policy: 7}); err == nil {
		t.Error("New with bad policy: expected error")
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := map[string]gaiji.Policy{
		"0":           gaiji.Placeholder,
		"placeholder": gaiji.Placeholder,
		"1":           gaiji.InlineImage,
		"IMAGE":       gaiji.InlineImage,
	}
	for s, want := range tests {
		got, err := gaiji.ParsePolicy(s)
		if err != nil {
			t.Errorf("ParsePolicy(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("ParsePolicy(%q): want %v, got %v", s, want, got)
		}
	}
	if _, err := gaiji.ParsePolicy("2"); err == nil {
		t.Error("ParsePolicy(2): expected error")
	}
}
