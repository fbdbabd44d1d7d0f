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
	"math"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/outliner/golang/backend/kernels"
)

var (
	unaryMath = map[string]func(float64) float64{
		"abs":  math.Abs,
		"cos":  math.Cos,
		"exp":  math.Exp,
		"log":  math.Log,
		"sin":  math.Sin,
		"sqrt": math.Sqrt,
		"tanh": math.Tanh,
	}

	binaryMath = map[string]func(float64, float64) float64{
		"pow":     math.Pow,
		"minimum": math.Min,
		"maximum": math.Max,
	}
)

// MathUnary applies a function from the math package elementwise.
type MathUnary struct {
	name   string
	x      Array
	kernel kernels.Unary
}

var _ Array = (*MathUnary)(nil)

// NewMathUnary returns a node applying the named math function on an array.
func NewMathUnary(name string, x Array) (*MathUnary, error) {
	f, ok := unaryMath[name]
	if !ok {
		return nil, errors.Errorf("unknown unary math function %q", name)
	}
	factory, err := kernels.FactoryFor(x.Shape().DType)
	if err != nil {
		return nil, err
	}
	return &MathUnary{
		name:   name,
		x:      x,
		kernel: factory.Math().Kernelize(f),
	}, nil
}

// Name of the math function.
func (n *MathUnary) Name() string {
	return n.name
}

// Shape of the result.
func (n *MathUnary) Shape() *shape.Shape {
	return n.x.Shape()
}

// Deps returns the operand.
func (n *MathUnary) Deps() []Node {
	return arrayDeps(n.x)
}

func (n *MathUnary) String() string {
	return fmt.Sprintf("Math(%s)", n.name)
}

func (n *MathUnary) eval(fr *frame) (kernels.Array, error) {
	x, err := fr.eval(n.x)
	if err != nil {
		return nil, err
	}
	return n.kernel(x)
}

// MathBinary applies a binary function from the math package elementwise.
type MathBinary struct {
	name   string
	x, y   Array
	shape  *shape.Shape
	kernel kernels.Binary
}

var _ Array = (*MathBinary)(nil)

// NewMathBinary returns a node applying the named math function on two arrays.
func NewMathBinary(name string, x, y Array) (*MathBinary, error) {
	f, ok := binaryMath[name]
	if !ok {
		return nil, errors.Errorf("unknown binary math function %q", name)
	}
	factory, err := kernels.FactoryFor(x.Shape().DType)
	if err != nil {
		return nil, err
	}
	kernel, sh, err := factory.Math().Kernelize2(f, x.Shape(), y.Shape())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot apply %s", name)
	}
	return &MathBinary{name: name, x: x, y: y, shape: sh, kernel: kernel}, nil
}

// Name of the math function.
func (n *MathBinary) Name() string {
	return n.name
}

// Shape of the result.
func (n *MathBinary) Shape() *shape.Shape {
	return n.shape
}

// Deps returns the two operands.
func (n *MathBinary) Deps() []Node {
	return arrayDeps(n.x, n.y)
}

func (n *MathBinary) String() string {
	return fmt.Sprintf("Math(%s)", n.name)
}

func (n *MathBinary) eval(fr *frame) (kernels.Array, error) {
	x, err := fr.eval(n.x)
	if err != nil {
		return nil, err
	}
	y, err := fr.eval(n.y)
	if err != nil {
		return nil, err
	}
	return n.kernel(x, y)
}
