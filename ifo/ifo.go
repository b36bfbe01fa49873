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

// Package ifo implements reading subbook .ifo files.
//
// An .ifo file starts with a magic line followed by "key=value" lines. The
// first key must be "version". Values are raw bytes up to the end of the
// line, so a title may be stored in EUC-JP.
package ifo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
)

var (
	errMissingMagic   = errors.New("missing magic")
	errMissingVersion = errors.New("missing version")
	errInvalidKey     = errors.New("invalid key")
	errInvalidLine    = errors.New("invalid line")
)

var keyRegex = regexp.MustCompile("^[a-zA-Z0-9-_]+$")

// Ifo is subbook metadata.
type Ifo struct {
	magic    string
	metadata map[string][]byte
}

// New reads an .ifo file from r.
func New(r io.Reader) (*Ifo, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading magic: %w", err)
		}
		return nil, errMissingMagic
	}

	ifo := &Ifo{
		magic:    string(bytes.TrimRight(s.Bytes(), "\r")),
		metadata: map[string][]byte{},
	}

	i := 0
	for s.Scan() {
		line := bytes.TrimRight(s.Bytes(), "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		key, value, ok := bytes.Cut(line, []byte("="))
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidLine, line)
		}
		key = bytes.TrimRight(key, " ")
		value = bytes.TrimLeft(value, " ")
		if !keyRegex.Match(key) {
			return nil, fmt.Errorf("%w: %q", errInvalidKey, key)
		}
		if i == 0 && string(key) != "version" {
			return nil, errMissingVersion
		}

		ifo.metadata[string(key)] = bytes.Clone(value)
		i++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	if i == 0 {
		return nil, errMissingVersion
	}

	return ifo, nil
}

// Magic returns the magic line.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value for key as a string.
func (i *Ifo) Value(key string) string {
	return string(i.metadata[key])
}

// Bytes returns the raw value for key.
func (i *Ifo) Bytes(key string) []byte {
	return i.metadata[key]
}
