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

// Package syn reads subbook alternate key files.
//
// A .syn file lists additional search keys for entries that are already in
// the subbook's .idx file, such as variant spellings. Each record is an
// EUC-JP key terminated by a zero byte, followed by the 32 bit big-endian
// position of the target entry in the .idx file.
package syn

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-eplkup/internal/index"
)

// Word is a .syn file entry.
type Word struct {
	// Word is the alternate key in EUC-JP.
	Word string

	// Entry is the position of the target entry in the .idx file.
	Entry uint32
}

// String implements [fmt.Stringer] and returns the alternate key.
func (w *Word) String() string {
	return w.Word
}

// Syn is the alternate key index.
type Syn struct {
	index *index.Index[*Word]
}

// New returns a new Syn by reading the data from r. The reader is closed
// when New returns.
func New(r io.ReadCloser) (*Syn, error) {
	s := NewScanner(r)
	defer s.Close()

	var words []*Word
	for s.Scan() {
		words = append(words, s.Word())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning synonym index: %w", err)
	}

	return &Syn{
		index: index.NewIndex(words, strings.Compare),
	}, nil
}

// NewFromPath opens and reads the .syn file for the subbook whose files
// start with basePath. A missing file is reported with an error wrapping
// [os.ErrNotExist].
func NewFromPath(basePath string) (*Syn, error) {
	f, err := Open(basePath)
	if err != nil {
		return nil, err
	}

	var r io.ReadCloser = f
	if strings.HasSuffix(strings.ToLower(f.Name()), ".gz") {
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating .syn gzip reader: %w", err)
		}
		r = &gzipFile{Reader: z, f: f}
	}

	return New(r)
}

// Open opens the .syn file for the subbook whose files start with basePath.
func Open(basePath string) (*os.File, error) {
	synExts := []string{
		".syn",
		".syn.gz",
		".SYN",
		".SYN.gz",
		".SYN.GZ",
	}
	var f *os.File
	var err error
	for _, ext := range synExts {
		f, err = os.Open(basePath + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening .syn file: %w", err)
		}
	}

	// Catch the case when no .syn file was found.
	if err != nil {
		return nil, fmt.Errorf("opening .syn file: %w", err)
	}

	return f, nil
}

// Search performs an exact match query of the index and returns matching
// words in file order.
func (syn *Syn) Search(query string) []*Word {
	return syn.index.Search(query)
}

// Len returns the number of words in the index.
func (syn *Syn) Len() int {
	return syn.index.Len()
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}
