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

package eplkup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/ianlewis/go-eplkup/dict"
	"github.com/ianlewis/go-eplkup/font"
	"github.com/ianlewis/go-eplkup/glyph"
	"github.com/ianlewis/go-eplkup/idx"
	"github.com/ianlewis/go-eplkup/ifo"
	"github.com/ianlewis/go-eplkup/syn"
)

const ifoMagic = "EB subbook ifo file"

// subbook is one volume of a book. Its index, raw text and fonts are opened
// on first use.
type subbook struct {
	basePath string

	version       string
	title         []byte
	directory     string
	wordcount     int64
	idxoffsetbits int

	idx  *idx.Idx
	dict *dict.Dict

	// syn is nil when the subbook has no alternate keys.
	syn       *syn.Syn
	synLoaded bool

	fonts      [2]*font.Font
	fontErrors [2]error
}

// openSubbook reads a subbook's metadata from the .ifo file at path.
func openSubbook(path string) (*subbook, error) {
	ifoExt := filepath.Ext(path)
	sb := &subbook{
		basePath:      strings.TrimSuffix(path, ifoExt),
		idxoffsetbits: 32,
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	info, err := ifo.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrBadSubbook, path, err)
	}

	if info.Magic() != ifoMagic {
		return nil, fmt.Errorf("%w: %q bad magic data", ErrBadSubbook, path)
	}

	sb.version = info.Value("version")
	if sb.version != "1.0" {
		return nil, fmt.Errorf("%w: %q invalid version: %v", ErrBadSubbook, path, sb.version)
	}

	sb.title = info.Bytes("title")

	sb.directory = info.Value("directory")
	if sb.directory == "" {
		sb.directory = filepath.Base(sb.basePath)
	}

	if wc := info.Value("wordcount"); wc != "" {
		sb.wordcount, err = strconv.ParseInt(wc, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q bad wordcount: %w", ErrBadSubbook, path, err)
		}
	}

	if bits := info.Value("idxoffsetbits"); bits != "" {
		sb.idxoffsetbits, err = strconv.Atoi(bits)
		if err != nil || (sb.idxoffsetbits != 32 && sb.idxoffsetbits != 64) {
			return nil, fmt.Errorf("%w: %q invalid idxoffsetbits: %v", ErrBadSubbook, path, bits)
		}
	}

	return sb, nil
}

// Index returns an in-memory version of the subbook's index.
func (sb *subbook) Index() (*idx.Idx, error) {
	if sb.idx != nil {
		return sb.idx, nil
	}
	x, err := idx.NewFromPath(sb.basePath, &idx.Options{
		OffsetBits: sb.idxoffsetbits,
	})
	if err != nil {
		return nil, fmt.Errorf("subbook %q: %w", sb.directory, err)
	}
	sb.idx = x
	return sb.idx, nil
}

// Synonyms returns the subbook's alternate key index, or nil if the subbook
// has none.
func (sb *subbook) Synonyms() (*syn.Syn, error) {
	if sb.synLoaded {
		return sb.syn, nil
	}
	s, err := syn.NewFromPath(sb.basePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("subbook %q: %w", sb.directory, err)
	default:
		sb.syn = s
	}
	sb.synLoaded = true
	return sb.syn, nil
}

// Dict returns the subbook's raw text.
func (sb *subbook) Dict() (*dict.Dict, error) {
	if sb.dict != nil {
		return sb.dict, nil
	}
	d, err := dict.Open(sb.basePath)
	if err != nil {
		return nil, fmt.Errorf("subbook %q: %w", sb.directory, err)
	}
	sb.dict = d
	return sb.dict, nil
}

// Font returns the subbook's gaiji font of the given width. A missing font
// file is reported as [font.ErrNoGlyph].
func (sb *subbook) Font(width glyph.Width) (*font.Font, error) {
	if width != glyph.Narrow && width != glyph.Wide {
		return nil, fmt.Errorf("%w: width %v", font.ErrNoGlyph, width)
	}
	if sb.fonts[width] != nil || sb.fontErrors[width] != nil {
		return sb.fonts[width], sb.fontErrors[width]
	}

	path := sb.basePath + "." + width.String() + ".fnt"
	f, err := font.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		err = fmt.Errorf("%w: subbook %q has no %v font", font.ErrNoGlyph, sb.directory, width)
	case err != nil:
		err = fmt.Errorf("subbook %q: %w", sb.directory, err)
	}
	sb.fonts[width], sb.fontErrors[width] = f, err
	return f, err
}

// Close closes the subbook's raw text.
func (sb *subbook) Close() error {
	var err error
	if sb.dict != nil {
		err = multierr.Append(err, sb.dict.Close())
		sb.dict = nil
	}
	return err
}
