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

// Package ordered provides ordered data structure.
package ordered

import "iter"

// Map is an ordered map. Iter iterates over the map
// using the same order in which the keys have been added.
type Map[K comparable, V any] struct {
	keys []K
	m    map[K]V
}

// NewMap returns a new ordered map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Store a key,value pair.
// Storing an existing key replaces its value but keeps its position.
func (m *Map[K, V]) Store(k K, v V) {
	if _, in := m.m[k]; !in {
		m.keys = append(m.keys, k)
	}
	m.m[k] = v
}

// Load returns a value given a key.
func (m *Map[K, V]) Load(k K) (V, bool) {
	v, ok := m.m[k]
	return v, ok
}

// Has returns true if the key is in the map.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.m[k]
	return ok
}

// Iter returns an iterator to range over the elements of the map.
func (m *Map[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.m[k]) {
				return
			}
		}
	}
}

// Keys returns an iterator to range over the keys of the map.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator to range over the values of the map.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, k := range m.keys {
			if !yield(m.m[k]) {
				return
			}
		}
	}
}

// Clone creates a new map with the same keys and values.
// This is a shallow clone.
func (m *Map[K, V]) Clone() *Map[K, V] {
	r := &Map[K, V]{
		keys: append([]K(nil), m.keys...),
		m:    make(map[K]V, len(m.m)),
	}
	for k, v := range m.m {
		r.m[k] = v
	}
	return r
}

// Size returns the number of elements in the map.
func (m *Map[K, V]) Size() int {
	return len(m.keys)
}

// Freeze returns a read-only snapshot of the map.
// Later modifications of m are not visible from the snapshot.
func (m *Map[K, V]) Freeze() *Frozen[K, V] {
	return &Frozen[K, V]{m: m.Clone()}
}

// Frozen is an immutable ordered map.
// A nil *Frozen behaves like an empty map.
type Frozen[K comparable, V any] struct {
	m *Map[K, V]
}

// Load returns a value given a key.
func (f *Frozen[K, V]) Load(k K) (v V, ok bool) {
	if f == nil {
		return
	}
	return f.m.Load(k)
}

// Has returns true if the key is in the map.
func (f *Frozen[K, V]) Has(k K) bool {
	return f != nil && f.m.Has(k)
}

// Iter returns an iterator to range over the elements of the map.
func (f *Frozen[K, V]) Iter() iter.Seq2[K, V] {
	if f == nil {
		return func(func(K, V) bool) {}
	}
	return f.m.Iter()
}

// Keys returns an iterator to range over the keys of the map.
func (f *Frozen[K, V]) Keys() iter.Seq[K] {
	if f == nil {
		return func(func(K) bool) {}
	}
	return f.m.Keys()
}

// Values returns an iterator to range over the values of the map.
func (f *Frozen[K, V]) Values() iter.Seq[V] {
	if f == nil {
		return func(func(V) bool) {}
	}
	return f.m.Values()
}

// Size returns the number of elements in the map.
func (f *Frozen[K, V]) Size() int {
	if f == nil {
		return 0
	}
	return f.m.Size()
}

// Thaw returns a mutable copy of the map.
func (f *Frozen[K, V]) Thaw() *Map[K, V] {
	if f == nil {
		return NewMap[K, V]()
	}
	return f.m.Clone()
}
