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
	"go/token"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

type algebraicFactory[T Numeric] struct{}

var _ Factory = algebraicFactory[float32]{}

// DType returns the data type of the arrays the factory creates kernels for.
func (algebraicFactory[T]) DType() dtype.DataType {
	return dtype.Generic[T]()
}

// Atom returns an atomic array storing a value.
func (algebraicFactory[T]) Atom(val float64) Array {
	return newArray(nil, []T{T(val)})
}

func binaryFunc[T Numeric](op token.Token) func(T, T) (T, error) {
	switch op {
	case token.ADD:
		return func(x, y T) (T, error) { return x + y, nil }
	case token.SUB:
		return func(x, y T) (T, error) { return x - y, nil }
	case token.MUL:
		return func(x, y T) (T, error) { return x * y, nil }
	case token.QUO:
		return func(x, y T) (T, error) { return x / y, nil }
	}
	return nil
}

// BinaryOp creates a new kernel for a binary operator.
func (algebraicFactory[T]) BinaryOp(op token.Token, x, y *shape.Shape) (Binary, *shape.Shape, error) {
	out, err := Broadcast(x, y)
	if err != nil {
		return nil, nil, err
	}
	f := binaryFunc[T](op)
	if f == nil {
		return nil, nil, errors.Errorf("operator %s not supported for %s", op.String(), x.DType.String())
	}
	return apply2(out, f), out, nil
}

// UnaryOp creates a new kernel for a unary operator.
func (algebraicFactory[T]) UnaryOp(op token.Token, x *shape.Shape) (Unary, *shape.Shape, error) {
	switch op {
	case token.SUB:
		return apply1(func(v T) T { return -v }), x, nil
	case token.ADD:
		return apply1(func(v T) T { return v }), x, nil
	default:
		return nil, nil, errors.Errorf("operator %s not supported for %s", op.String(), x.DType.String())
	}
}

// Cast creates a kernel converting the values of an array to another data type.
func (algebraicFactory[T]) Cast(target dtype.DataType, x *shape.Shape) (Unary, *shape.Shape, error) {
	out := &shape.Shape{
		DType:       target,
		AxisLengths: x.AxisLengths,
	}
	switch target {
	case dtype.Float32:
		return apply1(func(v T) float32 { return float32(v) }), out, nil
	case dtype.Float64:
		return apply1(func(v T) float64 { return float64(v) }), out, nil
	case dtype.Int32:
		return apply1(func(v T) int32 { return int32(v) }), out, nil
	case dtype.Int64:
		return apply1(func(v T) int64 { return int64(v) }), out, nil
	case dtype.Uint32:
		return apply1(func(v T) uint32 { return uint32(v) }), out, nil
	case dtype.Uint64:
		return apply1(func(v T) uint64 { return uint64(v) }), out, nil
	default:
		return nil, nil, errors.Errorf("cast from %s to %s not supported", x.DType.String(), target.String())
	}
}

// Math returns the factory for math functions.
func (algebraicFactory[T]) Math() MathFactory {
	return mathFactory[T]{}
}

type integerFactory[T dtype.IntegerType] struct {
	algebraicFactory[T]
}

var _ Factory = integerFactory[int64]{}

func integerFunc[T dtype.IntegerType](op token.Token) func(T, T) (T, error) {
	switch op {
	case token.QUO:
		return func(x, y T) (T, error) {
			if y == 0 {
				return 0, errors.Errorf("integer division by zero")
			}
			return x / y, nil
		}
	case token.REM:
		return func(x, y T) (T, error) {
			if y == 0 {
				return 0, errors.Errorf("integer division by zero")
			}
			return x % y, nil
		}
	}
	return binaryFunc[T](op)
}

// BinaryOp creates a new kernel for a binary operator.
func (integerFactory[T]) BinaryOp(op token.Token, x, y *shape.Shape) (Binary, *shape.Shape, error) {
	out, err := Broadcast(x, y)
	if err != nil {
		return nil, nil, err
	}
	f := integerFunc[T](op)
	if f == nil {
		return nil, nil, errors.Errorf("operator %s not supported for %s", op.String(), x.DType.String())
	}
	return apply2(out, f), out, nil
}
