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

package kernels

import (
	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/outliner/fmt/fmtarray"
)

// ArrayT is a multi-dimensional array of Go values stored by the host.
type ArrayT[T Numeric] struct {
	shape   shape.Shape
	values  []T
	factory Factory
}

var _ Array = (*ArrayT[int32])(nil)

func newArray[T Numeric](axisLengths []int, values []T) *ArrayT[T] {
	dt := dtype.Generic[T]()
	factory, _ := FactoryFor(dt)
	return &ArrayT[T]{
		shape: shape.Shape{
			DType:       dt,
			AxisLengths: axisLengths,
		},
		values:  values,
		factory: factory,
	}
}

func zero[T Numeric](sh *shape.Shape) *ArrayT[T] {
	return newArray(append([]int{}, sh.AxisLengths...), make([]T, sh.Size()))
}

// FromSlice returns an array given its flat row-major values and its axis lengths.
// A single value without axis lengths is an atomic array.
func FromSlice[T Numeric](values []T, axisLengths ...int) (*ArrayT[T], error) {
	size := 1
	for _, l := range axisLengths {
		if l < 0 {
			return nil, errors.Errorf("invalid negative axis length in %v", axisLengths)
		}
		size *= l
	}
	if size != len(values) {
		return nil, errors.Errorf("cannot create an array of shape %v from %d values", axisLengths, len(values))
	}
	return newArray(append([]int{}, axisLengths...), append([]T{}, values...)), nil
}

// FromArrayI converts an array from the backend into a host array.
func FromArrayI[T Numeric](a shape.ArrayI[T]) (*ArrayT[T], error) {
	return FromSlice(a.Flat(), a.Shape()...)
}

// Values returns the flat values of an array given the Go type of its elements.
func Values[T Numeric](a Array) ([]T, error) {
	aT, ok := a.(*ArrayT[T])
	if !ok {
		var zero T
		return nil, errors.Errorf("cannot read %s values as %T", a.Shape().String(), zero)
	}
	return aT.Flat(), nil
}

// Shape of the array.
func (a *ArrayT[T]) Shape() *shape.Shape {
	return &a.shape
}

// Flat values of the array. The slice is owned by the array and must not be modified.
func (a *ArrayT[T]) Flat() []T {
	return a.values
}

// String representation of the array.
func (a *ArrayT[T]) String() string {
	return fmtarray.Sprint[T](a.values, a.shape.AxisLengths)
}

// Factory available for arrays.
func (a *ArrayT[T]) Factory() Factory {
	return a.factory
}

func (a *ArrayT[T]) toAtom() (val T, err error) {
	if len(a.values) != 1 {
		err = errors.Errorf("%s not atomic", a.shape.String())
		return
	}
	val = a.values[0]
	return
}

// ToAtom returns the atomic value contained in the array.
// It returns an error if the value is not atomic, that is if the array
// contains more than one value.
func (a *ArrayT[T]) ToAtom() (any, error) {
	return a.toAtom()
}

// ToFloat64s returns a copy of the values of the array converted to float64.
func (a *ArrayT[T]) ToFloat64s() []float64 {
	vals := make([]float64, len(a.values))
	for i, v := range a.values {
		vals[i] = float64(v)
	}
	return vals
}

func toArray[T Numeric](a Array) (*ArrayT[T], error) {
	aT, ok := a.(*ArrayT[T])
	if !ok {
		var zero T
		return nil, errors.Errorf("kernel for %T called with an array of %s", zero, a.Shape().String())
	}
	return aT, nil
}

// stride returns the step to iterate over the values of an operand.
// Atomic operands are repeated for every element of the output.
func stride[T Numeric](a *ArrayT[T]) int {
	if len(a.values) == 1 {
		return 0
	}
	return 1
}

// apply2 applies f elementwise to x and y, broadcasting atomic operands.
func apply2[T, U Numeric](out *shape.Shape, f func(T, T) (U, error)) Binary {
	axes := append([]int{}, out.AxisLengths...)
	size := out.Size()
	return func(x, y Array) (Array, error) {
		xT, err := toArray[T](x)
		if err != nil {
			return nil, err
		}
		yT, err := toArray[T](y)
		if err != nil {
			return nil, err
		}
		xs, ys := stride(xT), stride(yT)
		if (xs == 1 && len(xT.values) != size) || (ys == 1 && len(yT.values) != size) {
			return nil, errors.Errorf("cannot apply kernel on %s and %s: output has %d elements", xT.shape.String(), yT.shape.String(), size)
		}
		vals := make([]U, size)
		for i := range vals {
			if vals[i], err = f(xT.values[i*xs], yT.values[i*ys]); err != nil {
				return nil, err
			}
		}
		return newArray(axes, vals), nil
	}
}

// apply1 applies f to every element of x.
func apply1[T, U Numeric](f func(T) U) Unary {
	return func(x Array) (Array, error) {
		xT, err := toArray[T](x)
		if err != nil {
			return nil, err
		}
		vals := make([]U, len(xT.values))
		for i, v := range xT.values {
			vals[i] = f(v)
		}
		return newArray(append([]int{}, xT.shape.AxisLengths...), vals), nil
	}
}
