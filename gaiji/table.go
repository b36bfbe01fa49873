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
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/k3a/html2text"
	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-eplkup/font"
	"github.com/ianlewis/go-eplkup/glyph"
)

// AnySubbook is the directory name of a table section that applies to every
// subbook.
const AnySubbook = "*"

var (
	// ErrInvalidTable indicates a malformed glyph table file.
	ErrInvalidTable = errors.New("invalid glyph table")
)

//go:embed default.yaml
var defaultTable []byte

// Key identifies a glyph.
type Key struct {
	Code  glyph.Code
	Width glyph.Width
}

// String implements [fmt.Stringer].
func (k Key) String() string {
	return k.Width.String() + ":" + k.Code.String()
}

// Entry is the replacement for a glyph.
type Entry struct {
	// Unicode is the glyph's Unicode equivalent. It is empty when the glyph
	// has no safe equivalent.
	Unicode string

	// Bitmap is an optional image of the glyph used instead of the
	// subbook's font.
	Bitmap *font.Bitmap
}

// Table maps glyphs to their replacements. A Table is immutable and safe for
// concurrent use.
type Table struct {
	entries map[Key]Entry
}

// NewTable returns a table holding entries. It returns an error if a
// replacement refers to a glyph itself.
func NewTable(entries map[Key]Entry) (*Table, error) {
	t := &Table{entries: make(map[Key]Entry, len(entries))}
	for k, e := range entries {
		if err := validateUnicode(e.Unicode); err != nil {
			return nil, fmt.Errorf("%w: %v: %w", ErrInvalidTable, k, err)
		}
		t.entries[k] = e
	}
	return t, nil
}

// Lookup returns the entry for a glyph.
func (t *Table) Lookup(code glyph.Code, width glyph.Width) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[Key{Code: code, Width: width}]
	return e, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// validateUnicode checks that s is valid UTF-8 holding no glyph code points,
// so that substituted text never needs substituting again.
func validateUnicode(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("invalid UTF-8 %q", s)
	}
	for _, r := range s {
		if _, _, ok := glyph.FromRune(r); ok {
			return fmt.Errorf("replacement %q contains glyph %U", s, r)
		}
	}
	return nil
}

// tableFile is the YAML glyph table file format.
type tableFile struct {
	Subbooks []subbookSection `yaml:"subbooks"`
}

type subbookSection struct {
	// Directory is the subbook directory the section applies to, or "*".
	Directory string         `yaml:"directory"`
	Glyphs    []glyphSection `yaml:"glyphs"`
}

type glyphSection struct {
	Code    string         `yaml:"code"`
	Width   string         `yaml:"width"`
	Unicode string         `yaml:"unicode"`
	Entity  string         `yaml:"entity"`
	Bitmap  *bitmapSection `yaml:"bitmap"`
}

type bitmapSection struct {
	Width int      `yaml:"width"`
	Rows  []string `yaml:"rows"`
}

// Catalog holds glyph tables for a set of subbooks.
type Catalog struct {
	sections map[string]map[Key]Entry
}

// Load reads a YAML glyph table file:
//
//	subbooks:
//	  - directory: "*"
//	    glyphs:
//	      - code: A121
//	        width: narrow
//	        unicode: "é"
//	      - code: A122
//	        width: narrow
//	        entity: "&egrave;"
//	      - code: B021
//	        width: wide
//	        bitmap:
//	          width: 8
//	          rows: ["ff", "81", "81", "ff"]
//
// A replacement may be given as an HTML character reference with entity
// instead of unicode. Unknown fields are rejected.
func Load(r io.Reader) (*Catalog, error) {
	var f tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	c := &Catalog{sections: map[string]map[Key]Entry{}}
	for i, sb := range f.Subbooks {
		dir := strings.ToUpper(strings.TrimSpace(sb.Directory))
		if dir == "" {
			return nil, fmt.Errorf("%w: subbook %d has no directory", ErrInvalidTable, i)
		}
		section, ok := c.sections[dir]
		if !ok {
			section = map[Key]Entry{}
			c.sections[dir] = section
		}
		for _, g := range sb.Glyphs {
			k, e, err := g.entry()
			if err != nil {
				return nil, fmt.Errorf("%w: subbook %q: %w", ErrInvalidTable, sb.Directory, err)
			}
			if _, dup := section[k]; dup {
				return nil, fmt.Errorf("%w: subbook %q: duplicate glyph %v", ErrInvalidTable, sb.Directory, k)
			}
			section[k] = e
		}
	}
	return c, nil
}

func (g *glyphSection) entry() (Key, Entry, error) {
	code, err := glyph.ParseCode(g.Code)
	if err != nil {
		return Key{}, Entry{}, err
	}
	width, err := glyph.ParseWidth(g.Width)
	if err != nil {
		return Key{}, Entry{}, err
	}
	k := Key{Code: code, Width: width}

	replacement := g.Unicode
	if g.Entity != "" {
		if g.Unicode != "" {
			return Key{}, Entry{}, fmt.Errorf("%v: both unicode and entity given", k)
		}
		replacement = html2text.HTMLEntitiesToText(g.Entity)
		if replacement == g.Entity {
			return Key{}, Entry{}, fmt.Errorf("%v: unknown entity %q", k, g.Entity)
		}
	}
	if err := validateUnicode(replacement); err != nil {
		return Key{}, Entry{}, fmt.Errorf("%v: %w", k, err)
	}
	e := Entry{Unicode: replacement}
	if g.Bitmap != nil {
		e.Bitmap, err = font.ParseHexRows(g.Bitmap.Width, g.Bitmap.Rows)
		if err != nil {
			return Key{}, Entry{}, fmt.Errorf("%v: %w", k, err)
		}
	}
	return k, e, nil
}

// LoadFile reads a YAML glyph table file from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glyph table: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built in glyph tables.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultTable))
	if err != nil {
		panic(err)
	}
	return c
}

// Table returns the table for the subbook with the given directory name.
// Entries of the "*" section apply unless the subbook's own section
// overrides them.
func (c *Catalog) Table(directory string) *Table {
	t := &Table{entries: map[Key]Entry{}}
	for _, dir := range []string{AnySubbook, strings.ToUpper(directory)} {
		for k, e := range c.sections[dir] {
			t.entries[k] = e
		}
	}
	return t
}
