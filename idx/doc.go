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

// Package idx implements reading subbook .idx files.
//
// The .idx file lists the search keys of a subbook with the positions of
// each matching entry's heading and text in the subbook's raw text stream.
//
// Each .idx file entry comes in three parts:
//  1. The key: EUC-JP bytes terminated by a null byte ('\0').
//  2. The heading offset: a 32 or 64 bit integer in network byte order.
//  3. The text offset: a 32 or 64 bit integer in network byte order.
//
// Keys are stored in their canonical search form; callers fold queries the
// same way before searching.
package idx
