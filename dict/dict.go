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

// Package dict implements random access to a subbook's raw text stream.
//
// The raw text is stored in a .honmon file, optionally compressed with the
// dictzip format as .honmon.dz so that it can still be read at arbitrary
// offsets.
package dict

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

var errOffsetTooLarge = errors.New("offset too large")

// Dict is a subbook's raw text.
type Dict struct {
	r io.ReaderAt
	c io.Closer
}

// New returns a new Dict reading from r. If r implements [io.Closer] the Dict
// takes ownership of it and closes it via the Dict's Close method.
func New(r io.ReaderAt) *Dict {
	d := &Dict{r: r}
	if c, ok := r.(io.Closer); ok {
		d.c = c
	}
	return d
}

// Open opens the raw text of the subbook whose files start with basePath.
func Open(basePath string) (*Dict, error) {
	exts := []string{
		".honmon",
		".honmon.dz",
		".HONMON",
		".HONMON.dz",
		".HONMON.DZ",
	}
	var f *os.File
	var err error
	for _, ext := range exts {
		f, err = os.Open(basePath + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening raw text: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("opening raw text: %w", err)
	}

	if !strings.HasSuffix(strings.ToLower(f.Name()), ".dz") {
		return New(f), nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening dictzip raw text: %w", err)
	}
	return &Dict{
		r: z,
		c: f,
	}, nil
}

// ReadAt reads up to n bytes at offset. A short result with a nil error
// means the end of the text was reached.
func (d *Dict) ReadAt(offset uint64, n int) ([]byte, error) {
	if offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", errOffsetTooLarge, offset)
	}
	b := make([]byte, n)
	//nolint:gosec // offset size is bounds checked above.
	m, err := d.r.ReadAt(b, int64(offset))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading raw text: %w", err)
	}
	return b[:m], nil
}

// Close closes the underlying reader.
func (d *Dict) Close() error {
	if d.c == nil {
		return nil
	}
	return d.c.Close()
}
