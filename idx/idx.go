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

package idx

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-eplkup/internal/index"
)

// Word is an .idx file entry.
type Word struct {
	// Word is the search key in EUC-JP.
	Word string

	// Heading is the offset of the entry's heading in the raw text.
	Heading uint64

	// Text is the offset of the entry's text in the raw text.
	Text uint64
}

// String implements [fmt.Stringer] and returns the search key.
func (w *Word) String() string {
	return w.Word
}

// Options are options for the idx data.
type Options struct {
	// OffsetBits are the number of bits in the offset fields. Valid values for
	// OffsetBits are either 32 or 64.
	OffsetBits int
}

// DefaultOptions is the default options for an Idx.
var DefaultOptions = &Options{
	OffsetBits: 32,
}

// Idx is an in-memory exact match search index.
type Idx struct {
	// words are in file order.
	words []*Word
	index *index.Index[*Word]
}

// New returns a new in-memory index by reading the data from r. The reader
// is closed when New returns.
func New(r io.ReadCloser, options *Options) (*Idx, error) {
	if options == nil {
		options = DefaultOptions
	}

	s, err := NewScanner(r, &ScannerOptions{
		OffsetBits: options.OffsetBits,
	})
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var words []*Word
	for s.Scan() {
		words = append(words, s.Word())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}

	return &Idx{
		words: words,
		index: index.NewIndex(words, strings.Compare),
	}, nil
}

// NewFromPath opens and reads the .idx file for the subbook whose files
// start with basePath.
func NewFromPath(basePath string, options *Options) (*Idx, error) {
	f, err := Open(basePath)
	if err != nil {
		return nil, err
	}

	var r io.ReadCloser = f
	if strings.HasSuffix(strings.ToLower(f.Name()), ".gz") {
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating .idx gzip reader: %w", err)
		}
		r = &gzipFile{Reader: z, f: f}
	}

	return New(r, options)
}

// Open opens the .idx file for the subbook whose files start with basePath.
func Open(basePath string) (*os.File, error) {
	idxExts := []string{
		".idx",
		".idx.gz",
		".IDX",
		".IDX.gz",
		".IDX.GZ",
	}
	var f *os.File
	var err error
	for _, ext := range idxExts {
		f, err = os.Open(basePath + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening .idx file: %w", err)
		}
	}

	// Catch the case when no .idx file was found.
	if err != nil {
		return nil, fmt.Errorf("opening .idx file: %w", err)
	}

	return f, nil
}

// Search performs an exact match query of the index and returns matching
// words in index order.
func (idx *Idx) Search(query string) []*Word {
	return idx.index.Search(query)
}

// Word returns the i'th entry of the index file.
func (idx *Idx) Word(i int) (*Word, bool) {
	if i < 0 || i >= len(idx.words) {
		return nil, false
	}
	return idx.words[i], true
}

// Len returns the number of words in the index.
func (idx *Idx) Len() int {
	return idx.index.Len()
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}
