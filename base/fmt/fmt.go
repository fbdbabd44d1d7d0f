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

// Package fmt provides utility methods for building string representations of graph objects.
package fmt

import (
	"fmt"
	"reflect"
	"strings"
)

// IndentSkip skips some lines and indent the rest with a tabulation.
func IndentSkip(skip int, x string) string {
	var y strings.Builder
	n := 0
	for line := range strings.Lines(x) {
		if n >= skip {
			y.WriteString("\t")
		}
		y.WriteString(line)
		n++
	}
	return y.String()
}

// Indent the given string by a tabulation.
func Indent(x string) string {
	return IndentSkip(0, x)
}

func isNil(x any) bool {
	val := reflect.ValueOf(x)
	switch val.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return val.IsNil()
	}
	return false
}

// String returns a human-friendly debugging string representation of a value.
func String(x any) string {
	if x == nil {
		return "nil"
	}
	if isNil(x) {
		return fmt.Sprintf("%T(nil)", x)
	}
	if strng, ok := x.(fmt.Stringer); ok {
		return strng.String()
	}
	return fmt.Sprintf("%v", x)
}

// Value returns a string identifying a value and its Go type,
// for example in error messages.
func Value(x any) string {
	if x == nil {
		return "nil"
	}
	return fmt.Sprintf("%s (type %T)", String(x), x)
}
