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

package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"github.com/ianlewis/go-eplkup/font"
	"github.com/ianlewis/go-eplkup/glyph"
	"github.com/ianlewis/go-eplkup/idx"
	"github.com/ianlewis/go-eplkup/syn"
)

// Entry is a test book entry.
type Entry struct {
	// Keys are the UTF-8 search keys for the entry.
	Keys []string

	// Heading is the raw heading text.
	Heading []byte

	// Text is the raw body text.
	Text []byte

	// Synonyms are UTF-8 alternate keys written to the .syn file. They refer
	// to the entry's first key.
	Synonyms []string
}

// Font is a test gaiji font.
type Font struct {
	Width   int
	Height  int
	Start   glyph.Code
	Bitmaps []*font.Bitmap
}

// Subbook is a test subbook.
type Subbook struct {
	// Name is the subbook's directory name and file base name.
	Name string

	// Title is the UTF-8 subbook title.
	Title string

	Entries []*Entry

	// OffsetBits is the index offset size. Defaults to 32.
	OffsetBits int

	// DictZip compresses the raw text with DictZip.
	DictZip bool

	NarrowFont *Font
	WideFont   *Font
}

// MakeBook writes a book with the given subbooks to a temporary directory and
// returns its path. Subbook files are named so that they sort in the order
// given.
func MakeBook(t *testing.T, subbooks ...*Subbook) string {
	t.Helper()

	dir := t.TempDir()
	for i, sb := range subbooks {
		base := filepath.Join(dir, fmt.Sprintf("%02d%s", i, sb.Name))
		MakeSubbook(t, base, sb)
	}
	return dir
}

// MakeSubbook writes the files of a subbook using basePath as the file base
// name.
func MakeSubbook(t *testing.T, basePath string, sb *Subbook) {
	t.Helper()

	bits := sb.OffsetBits
	if bits == 0 {
		bits = 32
	}

	enc := japanese.EUCJP.NewEncoder()

	var raw []byte
	var words []*idx.Word
	var synonyms []*syn.Word
	for _, e := range sb.Entries {
		heading := uint64(len(raw))
		raw = append(raw, e.Heading...)
		text := uint64(len(raw))
		raw = append(raw, e.Text...)

		for _, k := range e.Synonyms {
			if len(e.Keys) == 0 {
				t.Fatalf("synonym %q for an entry without keys", k)
			}
			key, err := enc.String(k)
			if err != nil {
				t.Fatalf("encoding synonym %q: %v", k, err)
			}
			synonyms = append(synonyms, &syn.Word{
				Word: key,
				//nolint:gosec // test code, small index
				Entry: uint32(len(words)),
			})
		}

		for _, k := range e.Keys {
			key, err := enc.String(k)
			if err != nil {
				t.Fatalf("encoding key %q: %v", k, err)
			}
			words = append(words, &idx.Word{
				Word:    key,
				Heading: heading,
				Text:    text,
			})
		}
	}

	title, err := enc.String(sb.Title)
	if err != nil {
		t.Fatalf("encoding title %q: %v", sb.Title, err)
	}

	var ifo bytes.Buffer
	fmt.Fprintln(&ifo, "EB subbook ifo file")
	fmt.Fprintln(&ifo, "version=1.0")
	fmt.Fprintf(&ifo, "title=%s\n", title)
	fmt.Fprintf(&ifo, "directory=%s\n", sb.Name)
	fmt.Fprintf(&ifo, "wordcount=%d\n", len(words))
	fmt.Fprintf(&ifo, "idxoffsetbits=%d\n", bits)

	writeFile(t, basePath+".ifo", ifo.Bytes())
	writeFile(t, basePath+".idx", MakeIndex(words, bits))
	MakeHonmon(t, basePath, raw, sb.DictZip)
	if len(synonyms) > 0 {
		writeFile(t, basePath+".syn", MakeSyn(synonyms))
	}

	if sb.NarrowFont != nil {
		writeFile(t, basePath+".narrow.fnt", MakeFont(t, sb.NarrowFont))
	}
	if sb.WideFont != nil {
		writeFile(t, basePath+".wide.fnt", MakeFont(t, sb.WideFont))
	}
}

// MakeFont encodes a font file.
func MakeFont(t *testing.T, f *Font) []byte {
	t.Helper()

	var b bytes.Buffer
	if err := font.Encode(&b, f.Width, f.Height, f.Start, f.Bitmaps); err != nil {
		t.Fatalf("encoding font: %v", err)
	}
	return b.Bytes()
}

// MustBitmap parses a bitmap from hex rows.
func MustBitmap(t *testing.T, width int, rows ...string) *font.Bitmap {
	t.Helper()

	b, err := font.ParseHexRows(width, rows)
	if err != nil {
		t.Fatalf("parsing bitmap: %v", err)
	}
	return b
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()

	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}
