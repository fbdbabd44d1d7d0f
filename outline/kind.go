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

package outline

import (
	"reflect"

	"github.com/gx-org/outliner/container"
	"github.com/gx-org/outliner/graph"
)

type argKind int

const (
	invalidKind argKind = iota
	scalarKind
	arrayKind
	containerKind
)

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// kindOf classifies a value passed to or returned by an outlined function.
func kindOf(v any) argKind {
	if v == nil {
		return invalidKind
	}
	if _, ok := v.(graph.Array); ok {
		if isNilPointer(v) {
			return invalidKind
		}
		return arrayKind
	}
	if container.IsContainer(v) {
		return containerKind
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return scalarKind
	}
	return invalidKind
}
