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
	"github.com/ianlewis/go-eplkup/glyph"
)

// Segment accumulates decoded EUC-JP text up to a fixed capacity. Writes
// that do not fit are truncated silently and every later write is dropped,
// so the content never ends inside a multi-byte character and never skips
// text to make room for something shorter.
type Segment struct {
	buf       []byte
	capacity  int
	truncated bool
}

// NewSegment returns an empty Segment that holds at most capacity bytes. A
// capacity of zero or less means no limit.
func NewSegment(capacity int) *Segment {
	return &Segment{capacity: capacity}
}

// Bytes returns the accumulated text. The slice is valid until the next
// write or Reset.
func (s *Segment) Bytes() []byte {
	return s.buf
}

// Truncated reports whether any write was cut short.
func (s *Segment) Truncated() bool {
	return s.truncated
}

// Reset empties the segment, keeping its storage and capacity.
func (s *Segment) Reset() {
	s.buf = s.buf[:0]
	s.truncated = false
}

// fits reports whether n more bytes can be written.
func (s *Segment) fits(n int) bool {
	if s.truncated {
		return false
	}
	return s.capacity <= 0 || len(s.buf)+n <= s.capacity
}

// WriteString appends markup. If it does not fit, the prefix that does is
// written, excluding any trailing bytes of a multi-byte character. Markup is
// expected to be ASCII.
func (s *Segment) WriteString(str string) {
	if s.fits(len(str)) {
		s.buf = append(s.buf, str...)
		return
	}
	if s.truncated {
		return
	}
	n := s.capacity - len(s.buf)
	for n > 0 && str[n-1] >= 0x80 {
		n--
	}
	s.buf = append(s.buf, str[:n]...)
	s.truncated = true
}

// WriteChar appends a single encoded character in full or not at all. It
// reports whether the character was written.
func (s *Segment) WriteChar(b ...byte) bool {
	if !s.fits(len(b)) {
		s.truncated = true
		return false
	}
	s.buf = append(s.buf, b...)
	return true
}

// WriteGlyph appends a glyph reference escape in full or not at all. It
// reports whether the reference was written.
func (s *Segment) WriteGlyph(code glyph.Code, width glyph.Width) bool {
	if !s.fits(glyph.EscapeLen) {
		s.truncated = true
		return false
	}
	s.buf = glyph.AppendEscape(s.buf, code, width)
	return true
}
