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

package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gx-org/outliner/base/stringseq"
)

type (
	// Tag attached to a function definition.
	// Two tags are the same if they have the same type and the same string representation.
	Tag interface {
		fmt.Stringer
	}

	// TagSet is an immutable set of tags.
	TagSet struct {
		tags []Tag
	}

	// FunctionIdentifier names a function definition.
	FunctionIdentifier struct {
		Identifier string
	}

	// InlineCall marks a function definition as a candidate for inlining.
	InlineCall struct{}
)

func (t FunctionIdentifier) String() string {
	return fmt.Sprintf("FunctionIdentifier(%s)", t.Identifier)
}

func (InlineCall) String() string {
	return "InlineCall"
}

func tagKey(tag Tag) string {
	return fmt.Sprintf("%T:%s", tag, tag.String())
}

// NewTagSet returns a set of tags.
// Duplicated tags are removed and the remaining tags are sorted.
func NewTagSet(tags ...Tag) TagSet {
	seen := make(map[string]bool, len(tags))
	var set []Tag
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		key := tagKey(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		set = append(set, tag)
	}
	slices.SortFunc(set, func(a, b Tag) int {
		return strings.Compare(tagKey(a), tagKey(b))
	})
	return TagSet{tags: set}
}

// Has returns true if the set contains the tag.
func (s TagSet) Has(tag Tag) bool {
	key := tagKey(tag)
	for _, t := range s.tags {
		if tagKey(t) == key {
			return true
		}
	}
	return false
}

// Tags returns a copy of the tags in the set.
func (s TagSet) Tags() []Tag {
	return slices.Clone(s.tags)
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s.tags)
}

func (s TagSet) String() string {
	return "{" + stringseq.JoinStringer(slices.Values(s.tags), ", ") + "}"
}
