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

package syn_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eplkup/internal/testutil"
	"github.com/ianlewis/go-eplkup/syn"
)

func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected []*syn.Word
	}{
		{
			name:     "empty",
			expected: nil,
		},
		{
			name: "multi",
			expected: []*syn.Word{
				{
					Word:  "hoge",
					Entry: 5,
				},
				{
					Word:  "fuga pico",
					Entry: 3,
				},
				{
					Word:  "\xbc\xad\xbd\xf1",
					Entry: 1 << 20,
				},
			},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := testutil.MakeSyn(test.expected)

			var words []*syn.Word
			s := syn.NewScanner(io.NopCloser(bytes.NewReader(b)))
			for s.Scan() {
				words = append(words, s.Word())
			}
			if err := s.Err(); err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(test.expected, words); diff != "" {
				t.Fatalf("words (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestScanner_truncated(t *testing.T) {
	t.Parallel()

	b := testutil.MakeSyn([]*syn.Word{{Word: "hoge", Entry: 1}})
	s := syn.NewScanner(io.NopCloser(bytes.NewReader(b[:len(b)-1])))
	for s.Scan() {
		t.Errorf("Scan: unexpected word %v", s.Word())
	}
	if s.Err() == nil {
		t.Fatal("Err: want error for truncated entry")
	}
}
