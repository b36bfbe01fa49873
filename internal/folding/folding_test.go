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

package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestWhitespaceFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "leading and trailing",
			input:    " \t辞書\r\n",
			expected: "辞書",
		},
		{
			name:     "internal spans",
			input:    "big  \t dictionary",
			expected: "big dictionary",
		},
		{
			name:     "ideographic space",
			input:    "国語　辞典　",
			expected: "国語 辞典",
		},
		{
			name:     "invalid utf-8",
			input:    " a\xffb ",
			expected: "a\xffb",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(&WhitespaceFolder{}, test.input)
			if err != nil {
				t.Fatalf("transform: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("WhitespaceFolder (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestWhitespaceFolder_shortDst checks that no input is lost when the
// destination is too small.
func TestWhitespaceFolder_shortDst(t *testing.T) {
	t.Parallel()

	w := &WhitespaceFolder{}
	src := []byte("あ い")
	dst := make([]byte, 4)

	nDst, nSrc, err := w.Transform(dst, src, true)
	if err != transform.ErrShortDst {
		t.Fatalf("Transform: want %v, got %v", transform.ErrShortDst, err)
	}
	if got, want := string(dst[:nDst]), "あ "; got != want {
		t.Errorf("dst: want %q, got %q", want, got)
	}
	if got, want := nSrc, 4; got != want {
		t.Errorf("nSrc: want %d, got %d", want, got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "unchanged",
			input:    "辞書",
			expected: "辞書",
		},
		{
			name:     "full-width ascii",
			input:    "ｄｉｃｔｉｏｎａｒｙ\n",
			expected: "dictionary",
		},
		{
			name:     "half-width katakana",
			input:    " ｼﾞｼｮ ",
			expected: "ジショ",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := Lookup(test.input)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Lookup (-want, +got):\n%s", diff)
			}
		})
	}
}
