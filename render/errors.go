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
	"errors"
	"fmt"
)

var (
	// ErrCollaborator indicates a failure of the book.
	ErrCollaborator = errors.New("book access failed")

	// ErrConversion indicates text that could not be converted.
	ErrConversion = errors.New("conversion failed")

	// ErrCapacity indicates rendered text larger than the output capacity.
	ErrCapacity = errors.New("output capacity exceeded")

	// ErrNoSuchHit indicates a selected hit beyond the end of the hit list.
	ErrNoSuchHit = errors.New("no such hit")

	// ErrInvalidOptions indicates unusable options.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrPartial indicates that some hits were skipped.
	ErrPartial = errors.New("some hits were skipped")
)

// State is a step in rendering one hit.
type State int

// The heading and body states run in the same order, so a body state is
// its heading state plus four.
const (
	// Idle is the state between hits.
	Idle State = iota

	// SeekHeading moves the book to the hit's heading.
	SeekHeading
	// ReadHeading decodes the heading with the markup hooks.
	ReadHeading
	// ConvertHeading converts the heading to UTF-8.
	ConvertHeading
	// SubstituteHeading replaces glyph references in the heading.
	SubstituteHeading

	// SeekBody moves the book to the hit's text.
	SeekBody
	// ReadBody decodes the text with the markup hooks.
	ReadBody
	// ConvertBody converts the text to UTF-8.
	ConvertBody
	// SubstituteBody replaces glyph references in the text.
	SubstituteBody

	// Emit writes the rendered hit.
	Emit

	// Failed is the state of a hit that could not be rendered.
	Failed
)

var stateNames = [...]string{
	Idle:              "idle",
	SeekHeading:       "seek-heading",
	ReadHeading:       "read-heading",
	ConvertHeading:    "convert-heading",
	SubstituteHeading: "substitute-heading",
	SeekBody:          "seek-body",
	ReadBody:          "read-body",
	ConvertBody:       "convert-body",
	SubstituteBody:    "substitute-body",
	Emit:              "emit",
	Failed:            "failed",
}

// String implements [fmt.Stringer].
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// HitError is the failure of one hit.
type HitError struct {
	// Index is the hit's index in the hit list.
	Index int

	// State is the step that failed.
	State State

	Err error
}

// Error implements [error].
func (e *HitError) Error() string {
	return fmt.Sprintf("hit %d: %v: %v", e.Index, e.State, e.Err)
}

// Unwrap returns the underlying error.
func (e *HitError) Unwrap() error {
	return e.Err
}
