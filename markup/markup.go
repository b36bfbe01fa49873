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

// Package markup writes textual markup for the spans found while entry text
// is decoded.
package markup

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"

	"github.com/ianlewis/go-eplkup/eb"
	"github.com/ianlewis/go-eplkup/glyph"
)

// Options selects the span categories that are marked up.
type Options struct {
	// Emphasis marks emphasized text with <em> and </em>.
	Emphasis bool

	// Keyword marks keywords with <KEYWORD> and </KEYWORD>.
	Keyword bool

	// Reference marks references with <LINK> and </LINK>.
	Reference bool

	// Subscript marks subscripts with <sub> and </sub>.
	Subscript bool

	// Superscript marks superscripts with <sup> and </sup>.
	Superscript bool
}

// Tags written for each span category.
const (
	BeginEmphasis    = "<em>"
	EndEmphasis      = "</em>"
	BeginKeyword     = "<KEYWORD>"
	EndKeyword       = "</KEYWORD>"
	BeginReference   = "<LINK>"
	EndReference     = "</LINK>"
	BeginSubscript   = "<sub>"
	EndSubscript     = "</sub>"
	BeginSuperscript = "<sup>"
	EndSuperscript   = "</sup>"
)

type span struct {
	enabled    func(*Options) bool
	begin, end eb.HookCode
	open, shut string
}

var spans = []span{
	{
		enabled: func(o *Options) bool { return o.Emphasis },
		begin:   eb.HookBeginEmphasis,
		end:     eb.HookEndEmphasis,
		open:    BeginEmphasis,
		shut:    EndEmphasis,
	},
	{
		enabled: func(o *Options) bool { return o.Keyword },
		begin:   eb.HookBeginKeyword,
		end:     eb.HookEndKeyword,
		open:    BeginKeyword,
		shut:    EndKeyword,
	},
	{
		enabled: func(o *Options) bool { return o.Reference },
		begin:   eb.HookBeginReference,
		end:     eb.HookEndReference,
		open:    BeginReference,
		shut:    EndReference,
	},
	{
		enabled: func(o *Options) bool { return o.Subscript },
		begin:   eb.HookBeginSubscript,
		end:     eb.HookEndSubscript,
		open:    BeginSubscript,
		shut:    EndSubscript,
	},
	{
		enabled: func(o *Options) bool { return o.Superscript },
		begin:   eb.HookBeginSuperscript,
		end:     eb.HookEndSuperscript,
		open:    BeginSuperscript,
		shut:    EndSuperscript,
	},
}

// Dispatcher provides the hooks that write markup into a segment while
// text is decoded. It holds no state between reads: the decoder tracks
// narrow spans itself and each glyph reference carries its own width.
type Dispatcher struct {
	hs *eb.Hookset
}

// New returns a Dispatcher with hooks for the categories enabled in opts.
// The narrow and wide font hooks are always registered.
func New(opts *Options) *Dispatcher {
	if opts == nil {
		opts = &Options{}
	}

	hs := eb.NewHookset()
	for _, s := range spans {
		if !s.enabled(opts) {
			continue
		}
		mustSet(hs, s.begin, writeTag(s.open))
		mustSet(hs, s.end, writeTag(s.shut))
	}

	mustSet(hs, eb.HookNarrowFont, eb.GlyphHook(glyph.Narrow))
	mustSet(hs, eb.HookWideFont, eb.GlyphHook(glyph.Wide))
	mustSet(hs, eb.HookNarrowJISX0208, narrowJISX0208)

	return &Dispatcher{hs: hs}
}

// Hookset returns the dispatcher's hooks.
func (d *Dispatcher) Hookset() *eb.Hookset {
	return d.hs
}

func mustSet(hs *eb.Hookset, code eb.HookCode, f eb.HookFunc) {
	if err := hs.Set(eb.Hook{Code: code, Func: f}); err != nil {
		panic(err)
	}
}

func writeTag(tag string) eb.HookFunc {
	return func(seg *eb.Segment, _ []uint32) {
		seg.WriteString(tag)
	}
}

// narrowJISX0208 writes a JIS X 0208 character found in a narrow span as
// ASCII when it has a half-width ASCII form.
func narrowJISX0208(seg *eb.Segment, argv []uint32) {
	if len(argv) == 0 {
		return
	}
	euc := []byte{byte(argv[0] >> 8), byte(argv[0])}
	if r, err := japanese.EUCJP.NewDecoder().Bytes(euc); err == nil {
		if n := width.Narrow.Bytes(r); len(n) == 1 && n[0] < 0x80 {
			seg.WriteChar(n[0])
			return
		}
	}
	seg.WriteChar(euc...)
}
