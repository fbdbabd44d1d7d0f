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

// Package container traverses containers of arrays.
//
// A container is a struct marked with the Container interface, an ObjArray,
// a slice of arrays or a slice of containers. Containers can be nested.
// Leaves of a container are identified by their path from the root.
package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/outliner/graph"
)

type (
	// Container marks a struct as a container of arrays.
	// Exported fields are visited in declaration order. The key of a field is
	// its name unless overwritten by a `array:"<name>"` tag. A field tagged
	// with `array:"-"` is ignored.
	// Array fields should be declared with the graph.Array interface type:
	// a field of a concrete node type such as *graph.DataWrapper can be read
	// by Leaves but cannot hold arrays of another type returned by KeyedMap.
	Container interface {
		ArrayContainer()
	}

	// ObjArray is an object array whose elements are arrays or containers.
	ObjArray []any

	// Leaf is an array stored in a container with its path.
	Leaf struct {
		Path  Path
		Array graph.Array
	}

	// KeyedMapFunc is called for every array leaf of a container.
	KeyedMapFunc func(Path, graph.Array) (graph.Array, error)

	// NilLeafError is returned when an array leaf of a container is nil.
	NilLeafError struct {
		Path Path
	}

	// InvalidLeafError is returned when an element of an ObjArray or a field of
	// type any is neither an array, a container nor a scalar, or when a nested
	// container is a nil pointer.
	InvalidLeafError struct {
		Path  Path
		Value any
	}
)

// ArrayContainer marks ObjArray as a container.
func (ObjArray) ArrayContainer() {}

func (err *NilLeafError) Error() string {
	return fmt.Sprintf("nil array at %s", err.Path.String())
}

func (err *InvalidLeafError) Error() string {
	return fmt.Sprintf("invalid leaf at %s: %T is neither a scalar, an array nor a container", err.Path.String(), err.Value)
}

const tagKey = "array"

var (
	containerType = reflect.TypeFor[Container]()
	arrayType     = reflect.TypeFor[graph.Array]()
)

// IsContainerType returns true if values of a type are containers.
func IsContainerType(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Slice:
		elem := typ.Elem()
		return typ.Implements(containerType) || elem == arrayType || IsContainerType(elem)
	case reflect.Struct:
		return typ.Implements(containerType) || reflect.PointerTo(typ).Implements(containerType)
	case reflect.Pointer:
		return typ.Elem().Kind() == reflect.Struct && IsContainerType(typ.Elem())
	}
	return false
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// IsContainer returns true if a value is a container.
func IsContainer(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}
	return IsContainerType(rv.Type())
}

func fieldKey(field reflect.StructField) (key string, skip bool) {
	tag, ok := field.Tag.Lookup(tagKey)
	if !ok {
		return field.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", true
	case "":
		return field.Name, false
	}
	return name, false
}

func isArrayValue(v reflect.Value) bool {
	return v.Type().Implements(arrayType)
}

func mapContainer(f KeyedMapFunc, path Path, v reflect.Value) (reflect.Value, error) {
	typ := v.Type()
	switch typ.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Value{}, errors.WithStack(&InvalidLeafError{Path: path, Value: v.Interface()})
		}
		elem, err := mapContainer(f, path, v.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.Struct:
		out := reflect.New(typ).Elem()
		out.Set(v)
		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			key, skip := fieldKey(field)
			if skip {
				continue
			}
			val, err := mapElement(f, path.Append(Name(key)), v.Field(i), field.Type)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(val)
		}
		return out, nil
	case reflect.Slice:
		if v.IsNil() {
			return v, nil
		}
		out := reflect.MakeSlice(typ, v.Len(), v.Len())
		for i := range v.Len() {
			val, err := mapElement(f, path.Append(Index(i)), v.Index(i), typ.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(val)
		}
		return out, nil
	}
	return reflect.Value{}, errors.Errorf("%s: type %s is not a container", path.String(), typ.String())
}

// mapElement maps an element stored in a field or a slice of type target.
// Values that are neither arrays nor containers are returned unchanged, except
// in fields of type any where only scalars are accepted.
func mapElement(f KeyedMapFunc, path Path, v reflect.Value, target reflect.Type) (reflect.Value, error) {
	dynamic := target.Kind() == reflect.Interface && target.NumMethod() == 0
	if target.Kind() == reflect.Interface {
		if v.IsNil() {
			if target == arrayType || target.NumMethod() == 0 {
				return reflect.Value{}, errors.WithStack(&NilLeafError{Path: path})
			}
			return v, nil
		}
		v = v.Elem()
	}
	if isArrayValue(v) {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return reflect.Value{}, errors.WithStack(&NilLeafError{Path: path})
		}
		res, err := f(path, v.Interface().(graph.Array))
		if err != nil {
			return reflect.Value{}, err
		}
		if res == nil {
			return reflect.Value{}, errors.Errorf("%s: mapping returned a nil array", path.String())
		}
		rv := reflect.ValueOf(res)
		if !rv.Type().AssignableTo(target) {
			return reflect.Value{}, errors.Errorf("%s: cannot assign %s to %s", path.String(), rv.Type().String(), target.String())
		}
		return rv, nil
	}
	if IsContainerType(v.Type()) {
		return mapContainer(f, path, v)
	}
	if dynamic && !isScalarKind(v.Kind()) {
		return reflect.Value{}, errors.WithStack(&InvalidLeafError{Path: path, Value: v.Interface()})
	}
	return v, nil
}

// KeyedMap returns a new container of the same type in which every array leaf
// has been replaced by the result of f. f is called with the path of the leaf
// in declaration order. The input container is not modified.
func KeyedMap(f KeyedMapFunc, c any) (any, error) {
	if !IsContainer(c) {
		return nil, errors.Errorf("%T is not a container", c)
	}
	out, err := mapContainer(f, nil, reflect.ValueOf(c))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// Map is like KeyedMap but f is called without the path of the leaf.
func Map(f func(graph.Array) (graph.Array, error), c any) (any, error) {
	return KeyedMap(func(_ Path, x graph.Array) (graph.Array, error) {
		return f(x)
	}, c)
}

// Leaves returns the array leaves of a container in traversal order.
func Leaves(c any) ([]Leaf, error) {
	var leaves []Leaf
	if _, err := KeyedMap(func(path Path, x graph.Array) (graph.Array, error) {
		leaves = append(leaves, Leaf{Path: path, Array: x})
		return x, nil
	}, c); err != nil {
		return nil, err
	}
	return leaves, nil
}
