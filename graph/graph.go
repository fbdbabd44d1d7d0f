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

// Package graph implements a lazy computational graph of arrays.
//
// Nodes are created eagerly with their shapes but are only computed when
// evaluated on the host. Functions can be defined over placeholders and
// called from other graphs, producing call sites.
package graph

import (
	"fmt"
	"go/token"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/outliner/golang/backend/kernels"
)

type (
	// Node in the graph.
	Node interface {
		// Deps returns the direct dependencies of the node.
		Deps() []Node
		// String returns a short description of the node, excluding its dependencies.
		String() string
	}

	// Array is a node producing an array.
	Array interface {
		Node
		// Shape of the array produced by the node.
		Shape() *shape.Shape
		eval(*frame) (kernels.Array, error)
	}
)

func arrayDeps(xs ...Array) []Node {
	deps := make([]Node, len(xs))
	for i, x := range xs {
		deps[i] = x
	}
	return deps
}

// Placeholder is a named array whose value is set when a function is called.
type Placeholder struct {
	name  string
	shape shape.Shape
}

var _ Array = (*Placeholder)(nil)

// NewPlaceholder returns a new placeholder given its name and its shape.
func NewPlaceholder(name string, sh *shape.Shape) (*Placeholder, error) {
	if name == "" {
		return nil, errors.Errorf("placeholder name cannot be empty")
	}
	if sh == nil {
		return nil, errors.Errorf("placeholder %s has no shape", name)
	}
	if _, err := kernels.FactoryFor(sh.DType); err != nil {
		return nil, errors.Wrapf(err, "cannot create placeholder %s", name)
	}
	return &Placeholder{
		name: name,
		shape: shape.Shape{
			DType:       sh.DType,
			AxisLengths: append([]int{}, sh.AxisLengths...),
		},
	}, nil
}

// Name of the placeholder.
func (n *Placeholder) Name() string {
	return n.name
}

// Shape of the placeholder.
func (n *Placeholder) Shape() *shape.Shape {
	return &n.shape
}

// Deps returns nil: a placeholder has no dependency.
func (n *Placeholder) Deps() []Node {
	return nil
}

func (n *Placeholder) String() string {
	return fmt.Sprintf("Placeholder(%s: %s)", n.name, n.shape.String())
}

func (n *Placeholder) eval(fr *frame) (kernels.Array, error) {
	val, ok := fr.params[n.name]
	if !ok {
		return nil, errors.Errorf("placeholder %s has no value", n.name)
	}
	if !kernels.SameShape(val.Shape(), &n.shape) {
		return nil, errors.Errorf("placeholder %s of shape %s bound to a value of shape %s", n.name, n.shape.String(), val.Shape().String())
	}
	return val, nil
}

// DataWrapper wraps concrete data stored on the host.
type DataWrapper struct {
	value kernels.Array
}

var _ Array = (*DataWrapper)(nil)

// NewDataWrapper returns a node storing a concrete value.
func NewDataWrapper(value kernels.Array) *DataWrapper {
	return &DataWrapper{value: value}
}

// Value returns the data wrapped by the node.
func (n *DataWrapper) Value() kernels.Array {
	return n.value
}

// Shape of the data.
func (n *DataWrapper) Shape() *shape.Shape {
	return n.value.Shape()
}

// Deps returns nil: the data is concrete.
func (n *DataWrapper) Deps() []Node {
	return nil
}

func (n *DataWrapper) String() string {
	return fmt.Sprintf("DataWrapper(%s)", n.value.Shape().String())
}

func (n *DataWrapper) eval(*frame) (kernels.Array, error) {
	return n.value, nil
}

// Constant is an atomic literal value inlined in the graph.
type Constant struct {
	value kernels.Array
}

var _ Array = (*Constant)(nil)

// NewConstant returns an atomic constant of a given data type.
func NewConstant(dt dtype.DataType, val float64) (*Constant, error) {
	value, err := kernels.Atom(dt, val)
	if err != nil {
		return nil, err
	}
	return &Constant{value: value}, nil
}

// Value of the constant.
func (n *Constant) Value() kernels.Array {
	return n.value
}

// Shape of the constant.
func (n *Constant) Shape() *shape.Shape {
	return n.value.Shape()
}

// Deps returns nil: a constant has no dependency.
func (n *Constant) Deps() []Node {
	return nil
}

func (n *Constant) String() string {
	return fmt.Sprintf("Constant(%s)", n.value.String())
}

func (n *Constant) eval(*frame) (kernels.Array, error) {
	return n.value, nil
}

// Binary applies a binary operator elementwise.
type Binary struct {
	op     token.Token
	x, y   Array
	shape  *shape.Shape
	kernel kernels.Binary
}

var _ Array = (*Binary)(nil)

// NewBinary returns a node applying a binary operator between two arrays.
func NewBinary(op token.Token, x, y Array) (*Binary, error) {
	factory, err := kernels.FactoryFor(x.Shape().DType)
	if err != nil {
		return nil, err
	}
	kernel, sh, err := factory.BinaryOp(op, x.Shape(), y.Shape())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot apply %s", op.String())
	}
	return &Binary{op: op, x: x, y: y, shape: sh, kernel: kernel}, nil
}

// Op returns the operator.
func (n *Binary) Op() token.Token {
	return n.op
}

// Shape of the result.
func (n *Binary) Shape() *shape.Shape {
	return n.shape
}

// Deps returns the two operands.
func (n *Binary) Deps() []Node {
	return arrayDeps(n.x, n.y)
}

func (n *Binary) String() string {
	return fmt.Sprintf("Binary(%s)", n.op.String())
}

func (n *Binary) eval(fr *frame) (kernels.Array, error) {
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

// Unary applies a unary operator elementwise.
type Unary struct {
	op     token.Token
	x      Array
	shape  *shape.Shape
	kernel kernels.Unary
}

var _ Array = (*Unary)(nil)

// NewUnary returns a node applying a unary operator on an array.
func NewUnary(op token.Token, x Array) (*Unary, error) {
	factory, err := kernels.FactoryFor(x.Shape().DType)
	if err != nil {
		return nil, err
	}
	kernel, sh, err := factory.UnaryOp(op, x.Shape())
	if err != nil {
		return nil, err
	}
	return &Unary{op: op, x: x, shape: sh, kernel: kernel}, nil
}

// Op returns the operator.
func (n *Unary) Op() token.Token {
	return n.op
}

// Shape of the result.
func (n *Unary) Shape() *shape.Shape {
	return n.shape
}

// Deps returns the operand.
func (n *Unary) Deps() []Node {
	return arrayDeps(n.x)
}

func (n *Unary) String() string {
	return fmt.Sprintf("Unary(%s)", n.op.String())
}

func (n *Unary) eval(fr *frame) (kernels.Array, error) {
	x, err := fr.eval(n.x)
	if err != nil {
		return nil, err
	}
	return n.kernel(x)
}
