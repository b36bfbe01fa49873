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

// Package render renders dictionary entries as UTF-8 text.
//
// A [Renderer] drives each hit of a search through a fixed sequence of
// states: the heading and then the body are each sought, read with the
// markup hooks, converted from EUC-JP to UTF-8 and have their glyph
// references substituted before the hit is emitted. A failure at any step
// moves the hit to the Failed state.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/ianlewis/go-eplkup/charset"
	"github.com/ianlewis/go-eplkup/eb"
	"github.com/ianlewis/go-eplkup/gaiji"
	"github.com/ianlewis/go-eplkup/internal/folding"
	"github.com/ianlewis/go-eplkup/internal/logging"
	"github.com/ianlewis/go-eplkup/markup"
)

// hitListSize is the number of hits requested from the book at a time.
const hitListSize = 50

// Renderer renders the entries of a book. A Renderer is not safe for
// concurrent use.
type Renderer struct {
	book   eb.Book
	subst  *gaiji.Substituter
	opts   Options
	log    *log.Logger
	markup *markup.Dispatcher
	conv   *charset.Converter

	state State

	// Buffers reused across hits.
	utf8  []byte
	final []byte
	out   bytes.Buffer
}

// New returns a Renderer for the current subbook of book.
func New(book eb.Book, subst *gaiji.Substituter, opts *Options, logger *log.Logger) (*Renderer, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Plain && subst != nil && subst.Policy() == gaiji.InlineImage {
		return nil, fmt.Errorf("%w: plain text cannot carry inline images", ErrInvalidOptions)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Renderer{
		book:   book,
		subst:  subst,
		opts:   *opts,
		log:    logger,
		markup: markup.New(&opts.Markup),
		conv:   charset.NewConverter(opts.OutputCapacity),
	}, nil
}

// State returns the state of the last hit rendered.
func (r *Renderer) State() State {
	return r.state
}

// Title writes the current subbook's title to w.
func (r *Renderer) Title(w io.Writer) error {
	title, err := r.book.Title()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCollaborator, err)
	}
	r.utf8, err = r.conv.Convert(r.utf8, title, charset.UTF8, charset.EUCJP)
	if err != nil {
		return conversionError(err)
	}
	if _, err := w.Write(r.utf8); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	return nil
}

// Lookup searches for the UTF-8 word and writes the matching entries to w.
func (r *Renderer) Lookup(w io.Writer, word string) error {
	folded, err := folding.Lookup(word)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	key, err := charset.FromUTF8([]byte(folded))
	if err != nil {
		return fmt.Errorf("%w: lookup word %q: %w", ErrConversion, folded, err)
	}
	if err := r.book.SearchExactWord(key); err != nil {
		return fmt.Errorf("%w: searching for %q: %w", ErrCollaborator, folded, err)
	}

	hits, err := r.hitList()
	if err != nil {
		return err
	}
	r.log.Debug("searched", logging.FieldWord, folded, logging.FieldHits, len(hits))
	return r.Render(w, hits)
}

// hitList drains the hit list of the current search.
func (r *Renderer) hitList() ([]eb.Hit, error) {
	var hits []eb.Hit
	for {
		batch, err := r.book.HitList(hitListSize)
		if err != nil {
			return nil, fmt.Errorf("%w: listing hits: %w", ErrCollaborator, err)
		}
		if len(batch) == 0 {
			return hits, nil
		}
		hits = append(hits, batch...)
	}
}

// Render writes hits to w.
func (r *Renderer) Render(w io.Writer, hits []eb.Hit) error {
	if len(hits) == 0 {
		return nil
	}

	indexes, err := r.selectHits(len(hits))
	if err != nil {
		return err
	}

	if r.opts.HitCount {
		if _, err := fmt.Fprintf(w, "{HITS: %d}\n", len(hits)); err != nil {
			return fmt.Errorf("writing hit count: %w", err)
		}
	}

	numbered := r.opts.HitNumbers && len(indexes) > 1 && r.opts.SelectedHit == NoHit

	var skipped error
	for _, i := range indexes {
		r.out.Reset()
		if numbered {
			fmt.Fprintf(&r.out, "{ENTRY: %d}\n", i)
		}

		if err := r.renderHit(i, hits[i]); err != nil {
			r.state = Failed
			if r.opts.ErrorPolicy == Abort {
				return err
			}
			r.log.Warn("skipping hit", logging.FieldHit, i, logging.FieldError, err)
			skipped = multierr.Append(skipped, err)
			continue
		}

		r.transition(i, Emit)
		if _, err := w.Write(r.out.Bytes()); err != nil {
			r.state = Failed
			return fmt.Errorf("writing hit %d: %w", i, err)
		}
		r.transition(i, Idle)
	}

	if skipped != nil {
		return fmt.Errorf("%w: %w", ErrPartial, skipped)
	}
	return nil
}

// selectHits returns the indexes of the hits to render.
func (r *Renderer) selectHits(n int) ([]int, error) {
	if r.opts.SelectedHit != NoHit {
		if r.opts.SelectedHit >= n {
			return nil, fmt.Errorf("%w: %d of %d hits", ErrNoSuchHit, r.opts.SelectedHit, n)
		}
		return []int{r.opts.SelectedHit}, nil
	}
	indexes := make([]int, min(n, r.opts.MaxHits))
	for i := range indexes {
		indexes[i] = i
	}
	return indexes, nil
}

// renderHit renders the heading and body of one hit into r.out.
func (r *Renderer) renderHit(i int, hit eb.Hit) error {
	if r.opts.Heading {
		text, err := r.piece(i, hit.Heading, SeekHeading, r.opts.HeadingCapacity, r.book.ReadHeading)
		if err != nil {
			return err
		}
		r.out.Write(text)
		r.out.WriteByte('\n')
	}
	if r.opts.Body {
		text, err := r.piece(i, hit.Text, SeekBody, r.opts.TextCapacity, r.book.ReadText)
		if err != nil {
			return err
		}
		r.out.Write(text)
	}
	return nil
}

type readFunc func(hs *eb.Hookset, capacity int) ([]byte, error)

// piece runs the seek, read, convert and substitute states starting at seek
// for the text at loc.
func (r *Renderer) piece(i int, loc eb.Locator, seek State, capacity int, read readFunc) ([]byte, error) {
	fail := func(err error) error {
		return &HitError{Index: i, State: r.state, Err: err}
	}

	r.transition(i, seek)
	if err := r.book.Seek(loc); err != nil {
		return nil, fail(fmt.Errorf("%w: seeking to %v: %w", ErrCollaborator, loc, err))
	}

	r.transition(i, seek+1)
	raw, err := read(r.markup.Hookset(), capacity)
	if err != nil {
		return nil, fail(fmt.Errorf("%w: reading %v: %w", ErrCollaborator, loc, err))
	}

	r.transition(i, seek+2)
	r.utf8, err = r.conv.Convert(r.utf8, raw, charset.UTF8, charset.EUCJP)
	if err != nil {
		return nil, fail(conversionError(err))
	}

	r.transition(i, seek+3)
	text := r.utf8
	if r.subst != nil {
		r.final, err = r.subst.Replace(r.final, r.utf8)
		if err != nil {
			if errors.Is(err, gaiji.ErrCapacity) {
				return nil, fail(fmt.Errorf("%w: %w", ErrCapacity, err))
			}
			return nil, fail(fmt.Errorf("%w: %w", ErrConversion, err))
		}
		text = r.final
	}

	return text, nil
}

func (r *Renderer) transition(i int, s State) {
	r.state = s
	r.log.Debug("hit", logging.FieldHit, i, logging.FieldState, s)
}

func conversionError(err error) error {
	if errors.Is(err, charset.ErrCapacity) {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	return fmt.Errorf("%w: %w", ErrConversion, err)
}
