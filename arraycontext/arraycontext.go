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

// Package arraycontext creates and operates on lazy arrays.
//
// Operations on arrays build a graph which is only evaluated when the
// values are transferred back to the host with ToHost.
package arraycontext

import (
	"go/token"
	"reflect"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	gxfmt "github.com/gx-org/outliner/base/fmt"
	"github.com/gx-org/outliner/golang/backend/kernels"
	"github.com/gx-org/outliner/graph"
	"github.com/gx-org/outliner/outline"
)

// Context creates arrays and operations between arrays.
type Context struct{}

// New returns a new array context.
func New() *Context {
	return &Context{}
}

// FromSlice returns an array given its flat row-major values and its axis lengths.
func FromSlice[T kernels.Numeric](ctx *Context, values []T, axisLengths ...int) (graph.Array, error) {
	a, err := kernels.FromSlice(values, axisLengths...)
	if err != nil {
		return nil, err
	}
	return ctx.FromHost(a), nil
}

// FromHost returns an array wrapping data stored on the host.
func (ctx *Context) FromHost(a kernels.Array) graph.Array {
	return graph.NewDataWrapper(a)
}

// ToHost evaluates arrays and returns their values.
func (ctx *Context) ToHost(arrays ...graph.Array) ([]kernels.Array, error) {
	return graph.Evaluate(arrays...)
}

// Outline returns an outliner for a function.
func (ctx *Context) Outline(f outline.Func, tags ...graph.Tag) *outline.Outliner {
	return outline.New(f, tags...)
}

// array converts a node into an array, returning a nil interface on error.
func array[T graph.Array](node T, err error) (graph.Array, error) {
	if err != nil {
		return nil, err
	}
	return node, nil
}

func scalarToFloat(x any) (float64, bool) {
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func constant(dt dtype.DataType, x any) (graph.Array, error) {
	val, ok := scalarToFloat(x)
	if !ok {
		return nil, errors.Errorf("operand %s is neither an array nor a numerical scalar", gxfmt.Value(x))
	}
	return array[*graph.Constant](graph.NewConstant(dt, val))
}

// operands converts scalar operands into constants of the data type of the other operand.
func operands(x, y any) (graph.Array, graph.Array, error) {
	xA, xOk := x.(graph.Array)
	yA, yOk := y.(graph.Array)
	var err error
	switch {
	case xOk && yOk:
	case xOk:
		yA, err = constant(xA.Shape().DType, y)
	case yOk:
		xA, err = constant(yA.Shape().DType, x)
	default:
		err = errors.Errorf("cannot apply an operator on %s and %s: at least one operand needs to be an array", gxfmt.Value(x), gxfmt.Value(y))
	}
	if err != nil {
		return nil, nil, err
	}
	return xA, yA, nil
}

func (ctx *Context) binary(op token.Token, x, y any) (graph.Array, error) {
	xA, yA, err := operands(x, y)
	if err != nil {
		return nil, err
	}
	return array[*graph.Binary](graph.NewBinary(op, xA, yA))
}

func (ctx *Context) mathBinary(name string, x, y any) (graph.Array, error) {
	xA, yA, err := operands(x, y)
	if err != nil {
		return nil, err
	}
	return array[*graph.MathBinary](graph.NewMathBinary(name, xA, yA))
}

// Add returns x+y. One of the operand can be a Go scalar.
func (ctx *Context) Add(x, y any) (graph.Array, error) {
	return ctx.binary(token.ADD, x, y)
}

// Sub returns x-y. One of the operand can be a Go scalar.
func (ctx *Context) Sub(x, y any) (graph.Array, error) {
	return ctx.binary(token.SUB, x, y)
}

// Mul returns x*y. One of the operand can be a Go scalar.
func (ctx *Context) Mul(x, y any) (graph.Array, error) {
	return ctx.binary(token.MUL, x, y)
}

// Quo returns x/y. One of the operand can be a Go scalar.
func (ctx *Context) Quo(x, y any) (graph.Array, error) {
	return ctx.binary(token.QUO, x, y)
}

// Pow returns x**y.
func (ctx *Context) Pow(x, y any) (graph.Array, error) {
	return ctx.mathBinary("pow", x, y)
}

// Minimum returns the elementwise minimum of x and y.
func (ctx *Context) Minimum(x, y any) (graph.Array, error) {
	return ctx.mathBinary("minimum", x, y)
}

// Maximum returns the elementwise maximum of x and y.
func (ctx *Context) Maximum(x, y any) (graph.Array, error) {
	return ctx.mathBinary("maximum", x, y)
}

// Neg returns -x.
func (ctx *Context) Neg(x graph.Array) (graph.Array, error) {
	return array[*graph.Unary](graph.NewUnary(token.SUB, x))
}

// Sin returns the elementwise sine of x.
func (ctx *Context) Sin(x graph.Array) (graph.Array, error) {
	return array[*graph.MathUnary](graph.NewMathUnary("sin", x))
}

// Cos returns the elementwise cosine of x.
func (ctx *Context) Cos(x graph.Array) (graph.Array, error) {
	return array[*graph.MathUnary](graph.NewMathUnary("cos", x))
}

// Exp returns the elementwise exponential of x.
func (ctx *Context) Exp(x graph.Array) (graph.Array, error) {
	return array[*graph.MathUnary](graph.NewMathUnary("exp", x))
}

// Sqrt returns the elementwise square root of x.
func (ctx *Context) Sqrt(x graph.Array) (graph.Array, error) {
	return array[*graph.MathUnary](graph.NewMathUnary("sqrt", x))
}
