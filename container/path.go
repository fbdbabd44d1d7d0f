// Copyright 2025 Google LLC
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

package container

import (
	"slices"
	"strconv"

	"github.com/gx-org/outliner/base/stringseq"
)

// Key is a component of a path to a leaf in a container.
// A key is either the index of an element or the name of a field.
type Key struct {
	index  int
	name   string
	isName bool
}

// Index returns a key referring to an element by its index.
func Index(i int) Key {
	return Key{index: i}
}

// Name returns a key referring to a field or a keyword by its name.
func Name(s string) Key {
	return Key{name: s, isName: true}
}

// IsIndex returns true if the key is an index.
func (k Key) IsIndex() bool {
	return !k.isName
}

// Index returns the index of the key. The value is only valid if IsIndex returns true.
func (k Key) Index() int {
	return k.index
}

// Name returns the name of the key. The value is only valid if IsIndex returns false.
func (k Key) Name() string {
	return k.name
}

func (k Key) String() string {
	if k.isName {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// Path to a leaf in a container.
type Path []Key

// Append returns a new path with keys appended. The receiver is not modified.
func (p Path) Append(keys ...Key) Path {
	r := make(Path, 0, len(p)+len(keys))
	r = append(r, p...)
	return append(r, keys...)
}

// Equal returns true if two paths have the same keys.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i, k := range p {
		if k != q[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return "(" + stringseq.JoinStringer(slices.Values(p), ", ") + ")"
}
