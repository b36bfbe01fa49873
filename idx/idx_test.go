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

package idx_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eplkup/idx"
	"github.com/ianlewis/go-eplkup/internal/testutil"
)

var testWords = []*idx.Word{
	{Word: "hoge", Heading: 0, Text: 10},
	{Word: "fuga", Heading: 20, Text: 30},
	{Word: "hoge", Heading: 40, Text: 50},
	{Word: "\xbc\xad\xbd\xf1", Heading: 60, Text: 70},
}

func TestIdx_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected []*idx.Word
	}{
		{
			name:  "multiple",
			query: "hoge",
			expected: []*idx.Word{
				{Word: "hoge", Heading: 0, Text: 10},
				{Word: "hoge", Heading: 40, Text: 50},
			},
		},
		{
			name:  "euc-jp",
			query: "\xbc\xad\xbd\xf1",
			expected: []*idx.Word{
				{Word: "\xbc\xad\xbd\xf1", Heading: 60, Text: 70},
			},
		},
		{
			name:     "no match",
			query:    "pico",
			expected: nil,
		},
		{
			name:     "prefix only",
			query:    "ho",
			expected: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := testutil.MakeIndex(testWords, 32)
			x, err := idx.New(io.NopCloser(bytes.NewReader(b)), nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got, want := x.Len(), len(testWords); got != want {
				t.Errorf("Len: want %d, got %d", want, got)
			}

			got := x.Search(test.query)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIdx_Word(t *testing.T) {
	t.Parallel()

	x, err := idx.New(io.NopCloser(bytes.NewReader(testutil.MakeIndex(testWords, 32))), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i, want := range testWords {
		got, ok := x.Word(i)
		if !ok {
			t.Fatalf("Word(%d): not found", i)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Word(%d) (-want, +got):\n%s", i, diff)
		}
	}
	for _, i := range []int{-1, len(testWords)} {
		if _, ok := x.Word(i); ok {
			t.Errorf("Word(%d): want not found", i)
		}
	}
}

func TestNewFromPath(t *testing.T) {
	t.Parallel()

	for _, gz := range []bool{false, true} {
		gz := gz
		name := "plain"
		if gz {
			name = "gzip"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			base := filepath.Join(t.TempDir(), "JITEN")
			b := testutil.MakeIndex(testWords, 64)
			path := base + ".idx"
			if gz {
				var buf bytes.Buffer
				z := gzip.NewWriter(&buf)
				if _, err := z.Write(b); err != nil {
					t.Fatal(err)
				}
				if err := z.Close(); err != nil {
					t.Fatal(err)
				}
				b = buf.Bytes()
				path += ".gz"
			}
			if err := os.WriteFile(path, b, 0o600); err != nil {
				t.Fatal(err)
			}

			x, err := idx.NewFromPath(base, &idx.Options{OffsetBits: 64})
			if err != nil {
				t.Fatalf("NewFromPath: %v", err)
			}
			got := x.Search("fuga")
			want := []*idx.Word{{Word: "fuga", Heading: 20, Text: 30}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNewFromPath_missing(t *testing.T) {
	t.Parallel()

	if _, err := idx.NewFromPath(filepath.Join(t.TempDir(), "NONE"), nil); err == nil {
		t.Fatal("expected error")
	}
}
