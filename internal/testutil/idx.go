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

package testutil

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ianlewis/go-eplkup/idx"
)

// MakeIndex make a test index given a list of words.
func MakeIndex(words []*idx.Word, idxoffsetbits int) []byte {
	b := []byte{}
	for _, w := range words {
		b = append(b, []byte(w.Word)...)
		b = append(b, 0) // Add the zero byte terminator.
		switch idxoffsetbits {
		case 32:
			if w.Heading > math.MaxUint32 || w.Text > math.MaxUint32 {
				panic(fmt.Sprintf("word offset too large for %d bits: %d/%d", idxoffsetbits, w.Heading, w.Text))
			}
			//nolint:gosec // test code, offset size checked above
			b = binary.BigEndian.AppendUint32(b, uint32(w.Heading))
			//nolint:gosec // test code, offset size checked above
			b = binary.BigEndian.AppendUint32(b, uint32(w.Text))
		case 64:
			b = binary.BigEndian.AppendUint64(b, w.Heading)
			b = binary.BigEndian.AppendUint64(b, w.Text)
		default:
			panic(fmt.Sprintf("unsupported offset bits: %d", idxoffsetbits))
		}
	}
	return b
}
