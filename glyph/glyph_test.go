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

package glyph

import (
	"testing"
	"unicode/utf8"
)

func TestRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		code  Code
		width Width
		want  rune
	}{
		{
			name:  "narrow",
			code:  0xA121,
			width: Narrow,
			want:  0xFA121,
		},
		{
			name:  "wide",
			code:  0xB021,
			width: Wide,
			want:  0x10B021,
		},
		{
			name:  "wide max",
			code:  0xFEFE,
			width: Wide,
			want:  0x10FEFE,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r := Rune(test.code, test.width)
			if r != test.want {
				t.Fatalf("Rune: want: %U, got: %U", test.want, r)
			}
			if !utf8.ValidRune(r) {
				t.Fatalf("Rune: %U is not a valid rune", r)
			}

			code, width, ok := FromRune(r)
			if !ok {
				t.Fatalf("FromRune(%U): not a glyph", r)
			}
			if code != test.code || width != test.width {
				t.Fatalf("FromRune(%U): want: %v/%v, got: %v/%v", r, test.code, test.width, code, width)
			}
		})
	}
}

func TestFromRune_notGlyph(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'a', 'あ', 0xE000, 0xEFFFF} {
		if _, _, ok := FromRune(r); ok {
			t.Errorf("FromRune(%U): unexpected glyph", r)
		}
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	b := AppendEscape([]byte("ab"), 0xA17E, Narrow)
	if want, got := 2+EscapeLen, len(b); want != got {
		t.Fatalf("len: want: %d, got: %d", want, got)
	}

	code, width, ok := ParseEscape(b[2:])
	if !ok {
		t.Fatal("ParseEscape: not an escape")
	}
	if code != 0xA17E || width != Narrow {
		t.Fatalf("ParseEscape: got %v/%v", code, width)
	}

	if _, _, ok := ParseEscape([]byte{Escape, 'x', 0xA1, 0x21}); ok {
		t.Fatal("ParseEscape: accepted bad width byte")
	}
	if _, _, ok := ParseEscape([]byte{Escape, 'n'}); ok {
		t.Fatal("ParseEscape: accepted short escape")
	}
}

func TestParseCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Code
		err  bool
	}{
		{in: "A121", want: 0xA121},
		{in: "0xb021", want: 0xB021},
		{in: "zz", err: true},
		{in: "12345", err: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCode(test.in)
			if test.err {
				if err == nil {
					t.Fatalf("ParseCode(%q): expected error", test.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCode(%q): %v", test.in, err)
			}
			if got != test.want {
				t.Fatalf("ParseCode(%q): want: %v, got: %v", test.in, test.want, got)
			}
			if got.String() != test.want.String() {
				t.Fatalf("String: want: %q, got: %q", test.want.String(), got.String())
			}
		})
	}
}
