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

// Package eplkup reads dictionary books and extracts their entries.
//
// A book is a directory holding one set of files per subbook:
//  1. A NAME.ifo file with the subbook's metadata: its title in EUC-JP, its
//     directory name, the number of index entries and the index offset size.
//  2. A NAME.idx file with the subbook's search keys in EUC-JP and, for each
//     key, the offsets of the entry's heading and text in the raw text. The
//     index file can be compressed using gzip.
//  3. A NAME.honmon file with the raw entry text. The raw text file can be
//     compressed using the dictzip format.
//  4. Optional NAME.narrow.fnt and NAME.wide.fnt files holding gaiji bitmaps.
//  5. An optional NAME.syn file with alternate search keys, such as variant
//     spellings, for entries in the index file.
//
// [Book] implements [eb.Book]. Entry text is decoded with [eb.Decode], so
// callers control the markup written for each entry through an
// [eb.Hookset].
package eplkup
