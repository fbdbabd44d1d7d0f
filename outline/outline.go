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

// Package outline captures calls to functions operating on arrays as function
// definitions and call sites in the graph.
//
// An outlined function is traced once per call: every array leaf of its
// arguments is replaced by a placeholder, the function is called with the
// placeholders, and the arrays it returns become the outputs of a new
// function definition. The definition is then called with the original
// arrays and the outputs of the call site are returned in the shape of the
// value returned by the function.
//
// Scalar arguments are not replaced by placeholders: their values are inlined
// in the traced function.
package outline

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/outliner/graph"
)

type (
	// Keyword argument.
	Keyword struct {
		Name  string
		Value any
	}

	// Func is a function that can be outlined.
	// Arguments and results are arrays, scalars or containers of arrays.
	Func func(args []any, kwargs []Keyword) (any, error)

	// Outliner outlines calls to a function.
	// An outliner is immutable and safe for concurrent use.
	Outliner struct {
		fn   Func
		tags graph.TagSet
	}
)

// New returns an outliner for a function. Tags are attached to every function
// definition created by the outliner.
func New(fn Func, tags ...graph.Tag) *Outliner {
	return &Outliner{
		fn:   fn,
		tags: graph.NewTagSet(tags...),
	}
}

// Outline returns a function with the same signature as fn outlining every call to fn.
func Outline(fn Func, tags ...graph.Tag) Func {
	return New(fn, tags...).Call
}

// Tags attached to the function definitions.
func (o *Outliner) Tags() graph.TagSet {
	return o.tags
}

// traced is the result of tracing a function with placeholders.
type traced struct {
	ins *inputs
	out any
	fn  *graph.FunctionDefinition
}

func (o *Outliner) trace(args []any, kwargs []Keyword) (*traced, error) {
	ins, err := flattenInputs(args, kwargs)
	if err != nil {
		return nil, err
	}
	phArgs, phKwargs, err := substituteAll(args, kwargs)
	if err != nil {
		return nil, err
	}
	out, err := o.fn(phArgs, phKwargs)
	if err != nil {
		return nil, errors.Wrap(err, "cannot trace outlined function")
	}
	rt, returns, err := flattenOutput(out)
	if err != nil {
		return nil, err
	}
	fn, err := graph.NewFunctionDefinition(slices.Collect(ins.Keys()), rt, returns, o.tags)
	if err != nil {
		return nil, err
	}
	return &traced{ins: ins, out: out, fn: fn}, nil
}

// Trace returns the function definition built by tracing the function with
// placeholders substituted for the arrays in the arguments.
func (o *Outliner) Trace(args []any, kwargs []Keyword) (*graph.FunctionDefinition, error) {
	tr, err := o.trace(args, kwargs)
	if err != nil {
		return nil, err
	}
	return tr.fn, nil
}

// Call traces the function and returns the outputs of a call site binding
// the arrays of the arguments to the resulting function definition.
// The result has the same shape as the value returned by the function.
func (o *Outliner) Call(args []any, kwargs []Keyword) (any, error) {
	tr, err := o.trace(args, kwargs)
	if err != nil {
		return nil, err
	}
	bindings := make(map[string]graph.Array, tr.ins.Size())
	for name, in := range tr.ins.Iter() {
		bindings[name] = in.value
	}
	call, err := tr.fn.Call(bindings)
	if err != nil {
		return nil, err
	}
	return repackage(call, tr.fn.ReturnType(), tr.out)
}
