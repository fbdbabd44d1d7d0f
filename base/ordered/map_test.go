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

package ordered_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/outliner/base/ordered"
)

type entry struct {
	k string
	v int
}

func collect(f *ordered.Frozen[string, int]) []entry {
	var got []entry
	for k, v := range f.Iter() {
		got = append(got, entry{k: k, v: v})
	}
	return got
}

func TestMap(t *testing.T) {
	tests := []struct {
		entries []entry
		want    []entry
	}{
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
			want: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
		},
		{
			entries: []entry{
				{k: "c", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
			want: []entry{
				{k: "c", v: 3},
				{k: "b", v: 2},
			},
		},
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "a", v: 2},
				{k: "a", v: 3},
			},
			want: []entry{
				{k: "a", v: 3},
			},
		},
	}
	for ti, test := range tests {
		m := ordered.NewMap[string, int]()
		for _, entry := range test.entries {
			m.Store(entry.k, entry.v)
		}
		if m.Size() != len(test.want) {
			t.Errorf("test %d: map has %d entries but want %d", ti, m.Size(), len(test.want))
			continue
		}
		got := collect(m.Freeze())
		if !cmp.Equal(got, test.want, cmp.AllowUnexported(entry{})) {
			t.Errorf("test %d: got %v but want %v", ti, got, test.want)
		}
		gotKeys := slices.Collect(m.Keys())
		gotValues := slices.Collect(m.Values())
		for i, want := range test.want {
			if gotKeys[i] != want.k || gotValues[i] != want.v {
				t.Errorf("test %d entry %d: got %s->%d but want %s->%d", ti, i, gotKeys[i], gotValues[i], want.k, want.v)
			}
		}
	}
}

func TestFreezeIsolation(t *testing.T) {
	m := ordered.NewMap[string, int]()
	m.Store("x", 1)
	frozen := m.Freeze()
	m.Store("y", 2)
	m.Store("x", 3)
	if frozen.Size() != 1 {
		t.Fatalf("frozen map has %d entries but want 1", frozen.Size())
	}
	if v, _ := frozen.Load("x"); v != 1 {
		t.Errorf("frozen map changed after a store: got x->%d but want x->1", v)
	}
	if frozen.Has("y") {
		t.Errorf("frozen map contains a key stored after freezing")
	}
	thawed := frozen.Thaw()
	thawed.Store("z", 4)
	if frozen.Has("z") {
		t.Errorf("storing into a thawed copy modified the frozen map")
	}
}

func TestNilFrozen(t *testing.T) {
	var f *ordered.Frozen[string, int]
	if f.Size() != 0 {
		t.Errorf("nil frozen map has size %d", f.Size())
	}
	if got := collect(f); len(got) != 0 {
		t.Errorf("nil frozen map iterates over %v", got)
	}
	if _, ok := f.Load("a"); ok {
		t.Errorf("nil frozen map returned a value")
	}
}
