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

// Package kernels implement Go kernels to evaluate lazy array graphs on the host.
package kernels

import (
	"go/token"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

type (
	// Numeric is the set of Go types supported by the kernels.
	Numeric interface {
		dtype.Float | dtype.IntegerType
	}

	// Array is a multi-dimensional array stored by the host.
	Array interface {
		// Factory returns the kernels available for the value.
		Factory() Factory

		// Shape returns the shape of the value.
		Shape() *shape.Shape

		// ToAtom returns the atomic value contained in the array.
		// It returns an error if the value is not atomic, that is if the array
		// contains more than one value.
		ToAtom() (any, error)

		// ToFloat64s returns a copy of the values of the array converted to float64.
		ToFloat64s() []float64

		// String representation of the array.
		String() string
	}

	// Unary like - or sin.
	Unary func(Array) (Array, error)

	// Binary like +, -, *, /.
	Binary func(Array, Array) (Array, error)

	// Factory creates kernels for arrays of a given data type.
	Factory interface {
		// DType returns the data type of the arrays the factory creates kernels for.
		DType() dtype.DataType

		// Atom returns an atomic array storing a value converted to the factory data type.
		Atom(float64) Array

		Cast(target dtype.DataType, x *shape.Shape) (Unary, *shape.Shape, error)

		UnaryOp(token.Token, *shape.Shape) (Unary, *shape.Shape, error)

		BinaryOp(token.Token, *shape.Shape, *shape.Shape) (Binary, *shape.Shape, error)

		Math() MathFactory
	}

	// MathFactory returns a factory to implement functions from the math package.
	MathFactory interface {
		// Kernelize turns a unary Go math function into a unary kernel.
		Kernelize(func(float64) float64) Unary

		// Kernelize2 turns a binary Go math function into a binary kernel.
		// Operands are broadcasted like the operands of BinaryOp.
		Kernelize2(f func(float64, float64) float64, x, y *shape.Shape) (Binary, *shape.Shape, error)
	}
)

func isAtomic(sh *shape.Shape) bool {
	return len(sh.AxisLengths) == 0
}

// FactoryFor returns a factory given a data type.
func FactoryFor(dt dtype.DataType) (Factory, error) {
	switch dt {
	case dtype.Float32:
		return algebraicFactory[float32]{}, nil
	case dtype.Float64:
		return algebraicFactory[float64]{}, nil
	case dtype.Uint32:
		return integerFactory[uint32]{}, nil
	case dtype.Uint64:
		return integerFactory[uint64]{}, nil
	case dtype.Int32:
		return integerFactory[int32]{}, nil
	case dtype.Int64:
		return integerFactory[int64]{}, nil
	default:
		return nil, errors.Errorf("no factory for %s", dt.String())
	}
}

// Atom returns an atomic array of a given data type storing a value.
func Atom(dt dtype.DataType, val float64) (Array, error) {
	factory, err := FactoryFor(dt)
	if err != nil {
		return nil, err
	}
	return factory.Atom(val), nil
}

// Zero returns an array of zeros given a shape.
func Zero(sh *shape.Shape) (Array, error) {
	switch sh.DType {
	case dtype.Float32:
		return zero[float32](sh), nil
	case dtype.Float64:
		return zero[float64](sh), nil
	case dtype.Int32:
		return zero[int32](sh), nil
	case dtype.Int64:
		return zero[int64](sh), nil
	case dtype.Uint32:
		return zero[uint32](sh), nil
	case dtype.Uint64:
		return zero[uint64](sh), nil
	default:
		return nil, errors.Errorf("cannot create an array of data type %s: not supported", sh.DType.String())
	}
}

// SameShape returns true if two shapes have the same data type and the same axis lengths.
func SameShape(x, y *shape.Shape) bool {
	if x.DType != y.DType || len(x.AxisLengths) != len(y.AxisLengths) {
		return false
	}
	for i, xi := range x.AxisLengths {
		if xi != y.AxisLengths[i] {
			return false
		}
	}
	return true
}

// Broadcast returns the shape resulting from an elementwise operation between x and y.
func Broadcast(x, y *shape.Shape) (*shape.Shape, error) {
	if x.DType != y.DType {
		return nil, errors.Errorf("mismatched data types %s and %s", x.DType.String(), y.DType.String())
	}
	switch {
	case isAtomic(x):
		return &shape.Shape{DType: x.DType, AxisLengths: y.AxisLengths}, nil
	case isAtomic(y), SameShape(x, y):
		return &shape.Shape{DType: x.DType, AxisLengths: x.AxisLengths}, nil
	}
	return nil, errors.Errorf("cannot broadcast %s with %s", x.String(), y.String())
}
