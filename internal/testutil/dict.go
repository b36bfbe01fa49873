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
	"os"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// MakeHonmon writes raw text to basePath plus ".honmon", or ".honmon.dz"
// compressed with DictZip when dz is true. It returns the path written.
func MakeHonmon(t *testing.T, basePath string, raw []byte, dz bool) string {
	t.Helper()

	path := basePath + ".honmon"
	if dz {
		path += ".dz"
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !dz {
		if _, err := f.Write(raw); err != nil {
			t.Fatal(err)
		}
		return path
	}

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
