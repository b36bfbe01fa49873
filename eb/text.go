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

import (
	"fmt"

	"github.com/ianlewis/go-eplkup/glyph"
)

// Stop selects the control codes that end a read.
type Stop int

const (
	// StopText ends a read at the end-of-text code only.
	StopText Stop = iota

	// StopHeading ends a read at the end-of-text code or the first newline.
	StopHeading
)

const escapeByte = 0x1F

// Control codes following the 0x1F escape byte.
const (
	ctlBeginText        = 0x02
	ctlEndText          = 0x03
	ctlBeginNarrow      = 0x04
	ctlEndNarrow        = 0x05
	ctlBeginSubscript   = 0x06
	ctlEndSubscript     = 0x07
	ctlIndent           = 0x09
	ctlNewline          = 0x0A
	ctlBeginSuperscript = 0x0E
	ctlEndSuperscript   = 0x0F
	ctlBeginKeyword     = 0x41
	ctlBeginReference   = 0x42
	ctlEndKeyword       = 0x61
	ctlEndReference     = 0x62
	ctlBeginDecoration  = 0xE0
	ctlEndDecoration    = 0xE1
)

// getaMark is written for a gaiji code when no font hook is registered.
var getaMark = []byte{0xA2, 0xAE}

// Decode decodes raw text into seg, firing the hooks in hs for each event.
// Decoding ends at a stop code, at the end of raw or once seg is full. Each
// call starts outside of any narrow span. It returns the number of raw bytes
// consumed.
func Decode(seg *Segment, raw []byte, hs *Hookset, stop Stop) (int, error) {
	narrow := false
	i := 0
	for i < len(raw) && !seg.Truncated() {
		if i+1 >= len(raw) {
			return i, fmt.Errorf("%w: odd trailing byte at offset %d", ErrMalformedText, i)
		}
		c1, c2 := raw[i], raw[i+1]

		switch {
		case c1 == escapeByte:
			size, done, err := control(seg, raw[i:], hs, stop, &narrow)
			if err != nil {
				return i, fmt.Errorf("%w at offset %d", err, i)
			}
			i += size
			if done {
				return i, nil
			}

		case 0x21 <= c1 && c1 <= 0x7E:
			if c2 < 0x21 || c2 > 0x7E {
				return i, fmt.Errorf("%w: bad character %#02x%02x at offset %d", ErrMalformedText, c1, c2, i)
			}
			euc := uint32(c1|0x80)<<8 | uint32(c2|0x80)
			if !narrow || !hs.fire(HookNarrowJISX0208, seg, euc) {
				seg.WriteChar(c1|0x80, c2|0x80)
			}
			i += 2

		case 0xA1 <= c1 && c1 <= 0xFE:
			code := uint32(c1)<<8 | uint32(c2)
			hook := HookWideFont
			if narrow {
				hook = HookNarrowFont
			}
			if !hs.fire(hook, seg, code) {
				seg.WriteChar(getaMark...)
			}
			i += 2

		default:
			return i, fmt.Errorf("%w: bad byte %#02x at offset %d", ErrMalformedText, c1, i)
		}
	}
	return i, nil
}

// control handles the control code at the start of raw. It returns the
// size of the code and whether the read is complete.
func control(seg *Segment, raw []byte, hs *Hookset, stop Stop, narrow *bool) (int, bool, error) {
	need := func(n int) error {
		if len(raw) < n {
			return fmt.Errorf("%w: truncated control code %#02x", ErrMalformedText, raw[1])
		}
		return nil
	}

	switch raw[1] {
	case ctlBeginText:
	case ctlEndText:
		return 2, true, nil
	case ctlBeginNarrow:
		*narrow = true
		hs.fire(HookBeginNarrow, seg)
	case ctlEndNarrow:
		*narrow = false
		hs.fire(HookEndNarrow, seg)
	case ctlBeginSubscript:
		hs.fire(HookBeginSubscript, seg)
	case ctlEndSubscript:
		hs.fire(HookEndSubscript, seg)
	case ctlBeginSuperscript:
		hs.fire(HookBeginSuperscript, seg)
	case ctlEndSuperscript:
		hs.fire(HookEndSuperscript, seg)
	case ctlNewline:
		if stop == StopHeading {
			return 2, true, nil
		}
		if !hs.fire(HookNewline, seg) {
			seg.WriteChar('\n')
		}
	case ctlIndent:
		if err := need(4); err != nil {
			return 0, false, err
		}
		return 4, false, nil
	case ctlBeginKeyword:
		if err := need(4); err != nil {
			return 0, false, err
		}
		hs.fire(HookBeginKeyword, seg, uint32(raw[2])<<8|uint32(raw[3]))
		return 4, false, nil
	case ctlEndKeyword:
		hs.fire(HookEndKeyword, seg)
	case ctlBeginReference:
		hs.fire(HookBeginReference, seg)
	case ctlEndReference:
		if err := need(8); err != nil {
			return 0, false, err
		}
		hs.fire(HookEndReference, seg, bcd(raw[2:6]), bcd(raw[6:8]))
		return 8, false, nil
	case ctlBeginDecoration:
		if err := need(4); err != nil {
			return 0, false, err
		}
		hs.fire(HookBeginEmphasis, seg, uint32(raw[2])<<8|uint32(raw[3]))
		return 4, false, nil
	case ctlEndDecoration:
		hs.fire(HookEndEmphasis, seg)
	}
	return 2, false, nil
}

// bcd decodes packed binary coded decimal digits.
func bcd(b []byte) uint32 {
	var n uint32
	for _, c := range b {
		n = n*100 + uint32(c>>4)*10 + uint32(c&0x0F)
	}
	return n
}

// GlyphHook returns a HookFunc that writes a glyph reference of the given
// width for the gaiji code in argv[0].
func GlyphHook(width glyph.Width) HookFunc {
	return func(seg *Segment, argv []uint32) {
		if len(argv) == 0 {
			return
		}
		seg.WriteGlyph(glyph.Code(argv[0]), width)
	}
}
