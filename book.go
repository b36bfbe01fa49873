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
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/ianlewis/go-eplkup/eb"
	"github.com/ianlewis/go-eplkup/font"
	"github.com/ianlewis/go-eplkup/glyph"
)

var (
	// ErrNotBound indicates that the book has been closed.
	ErrNotBound = errors.New("book not bound")

	// ErrNoSubbook indicates a missing subbook.
	ErrNoSubbook = errors.New("no such subbook")

	// ErrBadSubbook indicates invalid subbook metadata.
	ErrBadSubbook = errors.New("bad subbook")

	// ErrNoSearch indicates that hits were requested before a search.
	ErrNoSearch = errors.New("no search in progress")

	// ErrSeek indicates a read at an invalid position.
	ErrSeek = errors.New("bad text position")
)

const (
	// initialReadSize is the number of raw bytes first read for an entry.
	initialReadSize = 4096

	// maxReadSize bounds the raw bytes read for a single entry.
	maxReadSize = 1 << 22
)

var _ eb.Book = (*Book)(nil)

// Book is a dictionary book bound to a directory.
type Book struct {
	path     string
	subbooks []*subbook
	current  *subbook
	closed   bool

	// hits is the result of the last search; next is the index of the next
	// hit returned by HitList.
	hits     []eb.Hit
	next     int
	searched bool

	pos    int64
	seeked bool
}

// Bind binds the book in the directory at path. The first subbook, in file
// name order, is selected.
func Bind(path string) (*Book, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading book %q: %w", path, err)
	}

	b := &Book{path: path}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".ifo" && ext != ".IFO") {
			continue
		}
		sb, err := openSubbook(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		b.subbooks = append(b.subbooks, sb)
	}
	if len(b.subbooks) == 0 {
		return nil, fmt.Errorf("%w: no subbooks in %q", ErrNoSubbook, path)
	}
	slices.SortFunc(b.subbooks, func(x, y *subbook) int {
		return strings.Compare(x.basePath, y.basePath)
	})
	b.current = b.subbooks[0]

	return b, nil
}

// Path returns the book's directory.
func (b *Book) Path() string {
	return b.path
}

// Subbooks returns the number of subbooks in the book.
func (b *Book) Subbooks() int {
	return len(b.subbooks)
}

// SetSubbook selects the subbook at index. Any search in progress is
// discarded.
func (b *Book) SetSubbook(index int) error {
	if b.closed {
		return ErrNotBound
	}
	if index < 0 || index >= len(b.subbooks) {
		return fmt.Errorf("%w: %d", ErrNoSubbook, index)
	}
	b.current = b.subbooks[index]
	b.hits, b.next, b.searched = nil, 0, false
	b.pos, b.seeked = 0, false
	return nil
}

// Title returns the current subbook's title in EUC-JP.
func (b *Book) Title() ([]byte, error) {
	if b.closed {
		return nil, ErrNotBound
	}
	return slices.Clone(b.current.title), nil
}

// Directory returns the current subbook's directory name.
func (b *Book) Directory() (string, error) {
	if b.closed {
		return "", ErrNotBound
	}
	return b.current.directory, nil
}

// WordCount returns the number of index entries in the current subbook.
func (b *Book) WordCount() (int64, error) {
	if b.closed {
		return 0, ErrNotBound
	}
	return b.current.wordcount, nil
}

// SearchExactWord searches the current subbook for entries whose key or
// alternate key is exactly word, in EUC-JP. Entries found through their
// key come first, and each entry is a hit at most once.
func (b *Book) SearchExactWord(word []byte) error {
	if b.closed {
		return ErrNotBound
	}
	x, err := b.current.Index()
	if err != nil {
		return err
	}
	s, err := b.current.Synonyms()
	if err != nil {
		return err
	}

	words := slices.Clone(x.Search(string(word)))
	if s != nil {
		for _, alt := range s.Search(string(word)) {
			w, ok := x.Word(int(alt.Entry))
			if !ok {
				return fmt.Errorf("%w: alternate key %q refers to missing entry %d", ErrBadSubbook, alt.Word, alt.Entry)
			}
			words = append(words, w)
		}
	}

	hits := make([]eb.Hit, 0, len(words))
	seen := make(map[eb.Hit]bool, len(words))
	for _, w := range words {
		if w.Heading > math.MaxInt64 || w.Text > math.MaxInt64 {
			return fmt.Errorf("%w: offset of %q out of range", ErrBadSubbook, w.Word)
		}
		hit := eb.Hit{
			//nolint:gosec // offset size is bounds checked above.
			Heading: eb.Locator{Offset: int64(w.Heading)},
			//nolint:gosec // offset size is bounds checked above.
			Text: eb.Locator{Offset: int64(w.Text)},
		}
		if seen[hit] {
			continue
		}
		seen[hit] = true
		hits = append(hits, hit)
	}

	b.hits, b.next, b.searched = hits, 0, true
	return nil
}

// HitList returns up to maxHits hits following those already returned.
func (b *Book) HitList(maxHits int) ([]eb.Hit, error) {
	if b.closed {
		return nil, ErrNotBound
	}
	if !b.searched {
		return nil, ErrNoSearch
	}
	if maxHits <= 0 {
		return nil, fmt.Errorf("invalid hit list size: %d", maxHits)
	}

	end := min(b.next+maxHits, len(b.hits))
	hits := slices.Clone(b.hits[b.next:end])
	b.next = end
	return hits, nil
}

// Seek moves the read cursor to loc.
func (b *Book) Seek(loc eb.Locator) error {
	if b.closed {
		return ErrNotBound
	}
	if loc.Offset < 0 {
		return fmt.Errorf("%w: %v", ErrSeek, loc)
	}
	b.pos, b.seeked = loc.Offset, true
	return nil
}

// ReadHeading decodes heading text at the cursor. The heading ends at the
// first newline.
func (b *Book) ReadHeading(hs *eb.Hookset, capacity int) ([]byte, error) {
	return b.read(hs, capacity, eb.StopHeading)
}

// ReadText decodes body text at the cursor.
func (b *Book) ReadText(hs *eb.Hookset, capacity int) ([]byte, error) {
	return b.read(hs, capacity, eb.StopText)
}

// read decodes text at the cursor into a new segment of at most capacity
// bytes and advances the cursor past the consumed raw text. Raw text is read
// in growing chunks until decoding stops before the end of a chunk.
func (b *Book) read(hs *eb.Hookset, capacity int, stop eb.Stop) ([]byte, error) {
	if b.closed {
		return nil, ErrNotBound
	}
	if !b.seeked {
		return nil, fmt.Errorf("%w: no position set", ErrSeek)
	}
	d, err := b.current.Dict()
	if err != nil {
		return nil, err
	}

	size := initialReadSize
	for {
		//nolint:gosec // pos is never negative.
		raw, err := d.ReadAt(uint64(b.pos), size)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: %#x is past the end of text", ErrSeek, b.pos)
		}

		more := len(raw) == size && size < maxReadSize
		seg := eb.NewSegment(capacity)
		n, err := eb.Decode(seg, raw, hs, stop)
		if err != nil {
			// A control code may be cut by the end of the chunk.
			if more && errors.Is(err, eb.ErrMalformedText) {
				size *= 2
				continue
			}
			return nil, fmt.Errorf("reading text at %#x: %w", b.pos, err)
		}
		if more && n == len(raw) && !seg.Truncated() {
			size *= 2
			continue
		}

		b.pos += int64(n)
		return seg.Bytes(), nil
	}
}

// Bitmap returns the bitmap for a gaiji code from the current subbook's
// font of the given width. It returns an error wrapping [font.ErrNoGlyph]
// when the subbook has no such font or glyph.
func (b *Book) Bitmap(code glyph.Code, width glyph.Width) (*font.Bitmap, error) {
	if b.closed {
		return nil, ErrNotBound
	}
	f, err := b.current.Font(width)
	if err != nil {
		return nil, err
	}
	bm, err := f.Bitmap(code)
	if err != nil {
		return nil, fmt.Errorf("%v font of %q: %w", width, b.current.directory, err)
	}
	return bm, nil
}

// Close releases the book's resources. The book cannot be used afterwards.
func (b *Book) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	var err error
	for _, sb := range b.subbooks {
		err = multierr.Append(err, sb.Close())
	}
	return err
}
