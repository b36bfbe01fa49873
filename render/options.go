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

package render

import (
	"fmt"

	"github.com/ianlewis/go-eplkup/markup"
)

// NoHit is the SelectedHit value that renders every hit.
const NoHit = -1

// ErrorPolicy decides what happens when a hit cannot be rendered.
type ErrorPolicy int

const (
	// Abort stops the run at the first hit that fails.
	Abort ErrorPolicy = iota

	// Skip logs and skips hits that fail and renders the rest. The run
	// returns an error wrapping [ErrPartial].
	Skip
)

// String implements [fmt.Stringer].
func (p ErrorPolicy) String() string {
	if p == Skip {
		return "skip"
	}
	return "abort"
}

// Options configures a [Renderer]. Options are not modified after a
// Renderer is created.
type Options struct {
	// Markup selects the span categories that are marked up.
	Markup markup.Options

	// MaxHits is the maximum number of hits rendered.
	MaxHits int

	// SelectedHit is the index of the only hit to render, or NoHit.
	SelectedHit int

	// Heading renders each hit's heading line.
	Heading bool

	// Body renders each hit's text.
	Body bool

	// HitCount writes a {HITS: n} line before the hits.
	HitCount bool

	// HitNumbers writes an {ENTRY: i} line before each hit when several
	// hits are rendered.
	HitNumbers bool

	// Plain renders text without any markup. It cannot be combined with
	// the Markup categories or with inline glyph images.
	Plain bool

	// ErrorPolicy decides what happens when a hit cannot be rendered.
	ErrorPolicy ErrorPolicy

	// HeadingCapacity is the maximum size in bytes of a decoded heading.
	// Longer headings are truncated.
	HeadingCapacity int

	// TextCapacity is the maximum size in bytes of decoded text. Longer text
	// is truncated.
	TextCapacity int

	// OutputCapacity is the maximum size in bytes of a converted heading or
	// text. Larger output fails the hit.
	OutputCapacity int
}

// DefaultOptions are the default rendering options.
var DefaultOptions = &Options{
	MaxHits:         50,
	SelectedHit:     NoHit,
	Heading:         true,
	Body:            true,
	HeadingCapacity: 2048,
	TextCapacity:    60000,
	OutputCapacity:  1 << 20,
}

// Validate checks that the options are usable.
func (o *Options) Validate() error {
	if o.MaxHits < 1 {
		return fmt.Errorf("%w: max hits %d is less than 1", ErrInvalidOptions, o.MaxHits)
	}
	if o.SelectedHit < NoHit {
		return fmt.Errorf("%w: selected hit %d", ErrInvalidOptions, o.SelectedHit)
	}
	if o.HeadingCapacity < 1 || o.TextCapacity < 1 || o.OutputCapacity < 1 {
		return fmt.Errorf("%w: capacities must be positive", ErrInvalidOptions)
	}
	if o.Plain && o.Markup != (markup.Options{}) {
		return fmt.Errorf("%w: plain text cannot be combined with markup", ErrInvalidOptions)
	}
	if o.ErrorPolicy != Abort && o.ErrorPolicy != Skip {
		return fmt.Errorf("%w: error policy %d", ErrInvalidOptions, o.ErrorPolicy)
	}
	return nil
}
