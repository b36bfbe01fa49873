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

package eb

import "fmt"

// HookCode identifies an event raised while raw text is decoded.
type HookCode int

const (
	// HookBeginNarrow starts a narrow (half-width) span.
	HookBeginNarrow HookCode = iota
	// HookEndNarrow ends a narrow span.
	HookEndNarrow

	// HookBeginSubscript starts a subscript.
	HookBeginSubscript
	// HookEndSubscript ends a subscript.
	HookEndSubscript
	// HookBeginSuperscript starts a superscript.
	HookBeginSuperscript
	// HookEndSuperscript ends a superscript.
	HookEndSuperscript

	// HookBeginKeyword starts a keyword. argv[0] is the keyword's argument.
	HookBeginKeyword
	// HookEndKeyword ends a keyword.
	HookEndKeyword

	// HookBeginReference starts a reference to another entry.
	HookBeginReference
	// HookEndReference ends a reference. argv[0] and argv[1] are the target
	// page and offset.
	HookEndReference

	// HookBeginEmphasis starts an emphasis decoration. argv[0] is the
	// decoration type.
	HookBeginEmphasis
	// HookEndEmphasis ends an emphasis decoration.
	HookEndEmphasis

	// HookNarrowFont is a gaiji code inside a narrow span. argv[0] is the
	// code.
	HookNarrowFont
	// HookWideFont is a gaiji code outside of a narrow span. argv[0] is the
	// code.
	HookWideFont

	// HookNarrowJISX0208 is a JIS X 0208 character inside a narrow span.
	// argv[0] is the character's EUC-JP code.
	HookNarrowJISX0208

	// HookNewline is a line break. The decoder writes '\n' when no hook is
	// registered.
	HookNewline

	hookCount
)

var hookNames = [hookCount]string{
	HookBeginNarrow:      "begin-narrow",
	HookEndNarrow:        "end-narrow",
	HookBeginSubscript:   "begin-subscript",
	HookEndSubscript:     "end-subscript",
	HookBeginSuperscript: "begin-superscript",
	HookEndSuperscript:   "end-superscript",
	HookBeginKeyword:     "begin-keyword",
	HookEndKeyword:       "end-keyword",
	HookBeginReference:   "begin-reference",
	HookEndReference:     "end-reference",
	HookBeginEmphasis:    "begin-emphasis",
	HookEndEmphasis:      "end-emphasis",
	HookNarrowFont:       "narrow-font",
	HookWideFont:         "wide-font",
	HookNarrowJISX0208:   "narrow-jisx0208",
	HookNewline:          "newline",
}

// String implements [fmt.Stringer].
func (c HookCode) String() string {
	if c < 0 || c >= hookCount {
		return fmt.Sprintf("HookCode(%d)", int(c))
	}
	return hookNames[c]
}

// HookFunc handles a hook event by writing to seg. argv holds the event's
// arguments, if any.
type HookFunc func(seg *Segment, argv []uint32)

// Hook pairs an event with its handler.
type Hook struct {
	Code HookCode
	Func HookFunc
}

// Hookset is the set of hooks active for a read. The zero value has no hooks
// registered.
type Hookset struct {
	funcs [hookCount]HookFunc
}

// NewHookset returns an empty Hookset.
func NewHookset() *Hookset {
	return &Hookset{}
}

// Set registers a hook, replacing any previous handler for the same code.
// A nil Func unregisters the code.
func (hs *Hookset) Set(h Hook) error {
	if h.Code < 0 || h.Code >= hookCount {
		return fmt.Errorf("%w: %v", ErrInvalidHook, h.Code)
	}
	hs.funcs[h.Code] = h.Func
	return nil
}

// Registered reports whether a handler is registered for code.
func (hs *Hookset) Registered(code HookCode) bool {
	if hs == nil || code < 0 || code >= hookCount {
		return false
	}
	return hs.funcs[code] != nil
}

// fire invokes the handler for code and reports whether one was registered.
func (hs *Hookset) fire(code HookCode, seg *Segment, argv ...uint32) bool {
	if !hs.Registered(code) {
		return false
	}
	hs.funcs[code](seg, argv)
	return true
}
