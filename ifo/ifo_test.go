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

package ifo

import (
	"bytes"
	"testing"
)

// TestIfo tests Ifo
func TestIfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		expect func(*testing.T, *Ifo)
		err    bool
	}{
		{
			name: "magic and version",
			data: `test magic
version=1.0`,
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := "test magic", i.Magic(); want != got {
					t.Fatalf("magic; want: %q, got: %q", want, got)
				}
				if want, got := "1.0", i.Value("version"); want != got {
					t.Fatalf("version; want: %q, got: %q", want, got)
				}
			},
		},
		{
			name: "euc-jp title",
			data: "EB subbook ifo file\nversion=1.0\ntitle=\xbc\xad\xbd\xf1\ndirectory = JITEN\n\n",
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := []byte{0xBC, 0xAD, 0xBD, 0xF1}, i.Bytes("title"); !bytes.Equal(want, got) {
					t.Fatalf("title; want: %x, got: %x", want, got)
				}
				if want, got := "JITEN", i.Value("directory"); want != got {
					t.Fatalf("directory; want: %q, got: %q", want, got)
				}
			},
		},
		{
			name: "missing version",
			data: `test magic`,
			err:  true,
		},
		{
			name: "version not first",
			data: "test magic\ntitle=x\nversion=1.0",
			err:  true,
		},
		{
			name: "invalid key",
			data: "test magic\nversion=1.0\nbad key!=x",
			err:  true,
		},
		{
			name: "missing separator",
			data: "test magic\nversion=1.0\nnovalue",
			err:  true,
		},
		{
			name: "empty",
			data: "",
			err:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			i, err := New(bytes.NewReader([]byte(test.data)))
			if test.err && err == nil {
				t.Fatal("New: expected failure")
			}
			if !test.err && err != nil {
				t.Fatalf("New: %v", err)
			}
			if test.expect != nil {
				test.expect(t, i)
			}
		})
	}
}
