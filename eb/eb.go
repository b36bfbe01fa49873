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

// Package eb defines the seam between the text pipeline and a dictionary
// book: the [Book] interface, hooks fired while raw text is decoded and the
// bounded [Segment] the hooks write into.
//
// Raw entry text is a sequence of two byte units. Units with a 0x1F lead
// byte are control codes that mark the start and end of spans such as
// keywords, references and subscripts; units with a 0x21-0x7E lead byte are
// JIS X 0208 characters; units with a 0xA1-0xFE lead byte are gaiji codes.
// [Decode] walks the units, writes characters as EUC-JP and invokes the hook
// registered for each event in the order the events occur.
package eb

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedText indicates raw text that cannot be decoded.
	ErrMalformedText = errors.New("malformed text")

	// ErrInvalidHook indicates a hook with an unknown code.
	ErrInvalidHook = errors.New("invalid hook")
)

// Locator is an opaque position in a subbook's raw text.
type Locator struct {
	Offset int64
}

// String implements [fmt.Stringer].
func (l Locator) String() string {
	return fmt.Sprintf("%#x", l.Offset)
}

// Hit is one search result: the positions of its heading and its text.
type Hit struct {
	Heading Locator
	Text    Locator
}

// Book is a bound dictionary book with a current subbook and a single read
// cursor. Implementations are not safe for concurrent use.
type Book interface {
	// Subbooks returns the number of subbooks in the book.
	Subbooks() int

	// SetSubbook selects the subbook that subsequent calls operate on.
	SetSubbook(index int) error

	// Title returns the current subbook's title in EUC-JP.
	Title() ([]byte, error)

	// Directory returns the current subbook's directory name.
	Directory() (string, error)

	// SearchExactWord starts an exact search for an EUC-JP word.
	SearchExactWord(word []byte) error

	// HitList returns up to max hits of the current search. Each call
	// returns the hits following those already returned; an empty list
	// means the search is exhausted.
	HitList(max int) ([]Hit, error)

	// Seek moves the read cursor.
	Seek(loc Locator) error

	// ReadHeading decodes heading text at the cursor into a segment of at
	// most capacity bytes, firing the hooks in hs.
	ReadHeading(hs *Hookset, capacity int) ([]byte, error)

	// ReadText decodes body text at the cursor into a segment of at most
	// capacity bytes, firing the hooks in hs.
	ReadText(hs *Hookset, capacity int) ([]byte, error)

	// Close releases the book's resources.
	Close() error
}
