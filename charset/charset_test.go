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

package charset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eplkup/glyph"
)

func TestConverter_roundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{
			name: "ascii",
			text: "hello, world 123",
		},
		{
			name: "kanji and kana",
			text: "辞書を引く。ひらがな カタカナ",
		},
		{
			name: "half-width katakana",
			text: "ｶﾀｶﾅ",
		},
		{
			name: "markup",
			text: "<em>見出し</em>\n<KEYWORD>語</KEYWORD>",
		},
		{
			name: "glyphs",
			text: "a" + string(glyph.Rune(0xA121, glyph.Narrow)) + "字" + string(glyph.Rune(0xB021, glyph.Wide)),
		},
		{
			name: "embedded nul",
			text: "前\x00後",
		},
		{
			name: "empty",
			text: "",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c := NewConverter(0)
			legacy, err := c.Convert(nil, []byte(test.text), EUCJP, UTF8)
			if err != nil {
				t.Fatalf("Convert to EUC-JP: %v", err)
			}
			back, err := c.Convert(nil, legacy, UTF8, EUCJP)
			if err != nil {
				t.Fatalf("Convert to UTF-8: %v", err)
			}

			if diff := cmp.Diff(test.text, string(back)); diff != "" {
				t.Fatalf("round trip (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConverter_toUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      []byte
		capacity int
		expected string
		err      error
	}{
		{
			name:     "kanji",
			src:      []byte{0xBC, 0xAD, 0xBD, 0xF1},
			expected: "辞書",
		},
		{
			name:     "glyph escape",
			src:      glyph.AppendEscape([]byte{'x'}, 0xB021, glyph.Wide),
			expected: "x" + string(glyph.Rune(0xB021, glyph.Wide)),
		},
		{
			name: "invalid lead byte",
			src:  []byte{'a', 0xFF, 'b'},
			err:  ErrUnrepresentable,
		},
		{
			name: "truncated sequence",
			src:  []byte{0xBC, 0xAD, 0xBD},
			err:  ErrUnrepresentable,
		},
		{
			name: "bad escape",
			src:  []byte{glyph.Escape, 'q', 0xA1, 0x21},
			err:  ErrUnrepresentable,
		},
		{
			name:     "capacity",
			src:      []byte{0xBC, 0xAD, 0xBD, 0xF1},
			capacity: 5,
			err:      ErrCapacity,
		},
		{
			name:     "exact capacity",
			src:      []byte{0xBC, 0xAD, 0xBD, 0xF1},
			capacity: 6,
			expected: "辞書",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConverter(test.capacity).Convert(nil, test.src, UTF8, EUCJP)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("Convert: want error %v, got %v", test.err, err)
				}
				if len(got) != 0 {
					t.Fatalf("Convert: unexpected output on failure: %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if diff := cmp.Diff(test.expected, string(got)); diff != "" {
				t.Fatalf("Convert (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConverter_fromUTF8(t *testing.T) {
	t.Parallel()

	c := NewConverter(0)

	got, err := c.Convert(nil, []byte("辞書"), EUCJP, UTF8)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if diff := cmp.Diff([]byte{0xBC, 0xAD, 0xBD, 0xF1}, got); diff != "" {
		t.Fatalf("Convert (-want, +got):\n%s", diff)
	}

	if _, err := c.Convert(nil, []byte("smile 😀"), EUCJP, UTF8); !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("Convert emoji: want %v, got %v", ErrUnrepresentable, err)
	}
	if _, err := c.Convert(nil, []byte{'a', 0xC3}, EUCJP, UTF8); !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("Convert invalid UTF-8: want %v, got %v", ErrUnrepresentable, err)
	}
}

func TestConverter_reusesDst(t *testing.T) {
	t.Parallel()

	dst := make([]byte, 0, 64)
	dst = append(dst, "stale"...)
	got, err := NewConverter(0).Convert(dst, []byte{0xA4, 0xA2}, UTF8, EUCJP)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if want := "あ"; string(got) != want {
		t.Fatalf("Convert: want %q, got %q", want, got)
	}
}
