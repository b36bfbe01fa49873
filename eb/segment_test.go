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

package eb_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eplkup/eb"
	"github.com/ianlewis/go-eplkup/glyph"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		capacity  int
		write     func(seg *eb.Segment)
		expected  string
		truncated bool
	}{
		{
			name:     "unbounded",
			capacity: 0,
			write: func(seg *eb.Segment) {
				seg.WriteString("<em>")
				seg.WriteChar(0xbc, 0xad)
				seg.WriteString("</em>")
			},
			expected: "<em>\xbc\xad</em>",
		},
		{
			name:     "markup cut at capacity",
			capacity: 8,
			write: func(seg *eb.Segment) {
				seg.WriteChar(0xbc, 0xad)
				seg.WriteString("<KEYWORD>")
			},
			expected:  "\xbc\xad<KEYWO",
			truncated: true,
		},
		{
			name:     "character never split",
			capacity: 3,
			write: func(seg *eb.Segment) {
				seg.WriteChar(0xbc, 0xad)
				seg.WriteChar(0xbd, 0xf1)
			},
			expected:  "\xbc\xad",
			truncated: true,
		},
		{
			name:     "nothing after truncation",
			capacity: 3,
			write: func(seg *eb.Segment) {
				seg.WriteChar(0xbc, 0xad)
				seg.WriteChar(0xbd, 0xf1)
				seg.WriteString("a")
				seg.WriteChar('b')
			},
			expected:  "\xbc\xad",
			truncated: true,
		},
		{
			name:     "non-ascii markup not split",
			capacity: 2,
			write: func(seg *eb.Segment) {
				seg.WriteString("a\xbc\xad")
			},
			expected:  "a",
			truncated: true,
		},
		{
			name:     "glyph all or nothing",
			capacity: 5,
			write: func(seg *eb.Segment) {
				seg.WriteChar('a', 'b')
				seg.WriteGlyph(0xB021, glyph.Wide)
			},
			expected:  "ab",
			truncated: true,
		},
		{
			name:     "exact fit",
			capacity: 4,
			write: func(seg *eb.Segment) {
				seg.WriteString("<em>")
			},
			expected: "<em>",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			seg := eb.NewSegment(test.capacity)
			test.write(seg)
			if diff := cmp.Diff(test.expected, string(seg.Bytes())); diff != "" {
				t.Errorf("Bytes (-want, +got):\n%s", diff)
			}
			if got, want := seg.Truncated(), test.truncated; got != want {
				t.Errorf("Truncated: want %v, got %v", want, got)
			}
		})
	}
}

func TestSegment_Reset(t *testing.T) {
	t.Parallel()

	seg := eb.NewSegment(4)
	seg.WriteChar('a')
	seg.WriteString("bcdef")
	if !seg.Truncated() {
		t.Fatal("Truncated: want true")
	}
	if seg.WriteChar('g') {
		t.Error("WriteChar: want dropped after truncation")
	}

	seg.Reset()
	if seg.Truncated() || len(seg.Bytes()) != 0 {
		t.Fatalf("Reset: got %q, truncated %v", seg.Bytes(), seg.Truncated())
	}
	seg.WriteString("wxyz")
	if got, want := string(seg.Bytes()), "wxyz"; got != want || seg.Truncated() {
		t.Errorf("after Reset: want %q untruncated, got %q (truncated %v)", want, got, seg.Truncated())
	}
}
