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
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/shape"
	gxfmt "github.com/gx-org/outliner/base/fmt"
	"github.com/gx-org/outliner/base/ordered"
	"github.com/gx-org/outliner/golang/backend/kernels"
	"go.uber.org/multierr"
)

// ReturnType is the kind of value returned by a function definition.
type ReturnType int

const (
	// ReturnArray is a function returning a single array.
	ReturnArray ReturnType = iota
	// ReturnDictOfArrays is a function returning arrays keyed by names.
	ReturnDictOfArrays
)

func (rt ReturnType) String() string {
	switch rt {
	case ReturnArray:
		return "ARRAY"
	case ReturnDictOfArrays:
		return "DICT_OF_ARRAYS"
	default:
		return fmt.Sprintf("ReturnType(%d)", int(rt))
	}
}

// SingleReturnName is the name of the output of a function returning a single array.
const SingleReturnName = "_"

// FunctionDefinition is a function from named placeholders to named outputs.
type FunctionDefinition struct {
	params       []string
	rt           ReturnType
	returns      *ordered.Frozen[string, Array]
	tags         TagSet
	placeholders map[string]*Placeholder
	fingerprint  uint64
}

func collectPlaceholders(returns *ordered.Frozen[string, Array]) (map[string]*Placeholder, error) {
	var errs error
	phs := make(map[string]*Placeholder)
	roots := make([]Node, 0, returns.Size())
	for name, ret := range returns.Iter() {
		if ret == nil {
			errs = multierr.Append(errs, errors.Errorf("return %s is nil", name))
			continue
		}
		roots = append(roots, ret)
	}
	walk(roots, func(n Node) {
		ph, ok := n.(*Placeholder)
		if !ok {
			return
		}
		prev, exist := phs[ph.name]
		if !exist {
			phs[ph.name] = ph
			return
		}
		if !kernels.SameShape(prev.Shape(), ph.Shape()) {
			errs = multierr.Append(errs, errors.Errorf("placeholder %s used with shapes %s and %s", ph.name, prev.Shape().String(), ph.Shape().String()))
		}
	})
	return phs, errs
}

// NewFunctionDefinition returns a new function definition given its parameter names and
// the arrays it returns. Arrays returned by the function can only depend on placeholders
// listed in the parameters.
func NewFunctionDefinition(params []string, rt ReturnType, returns *ordered.Frozen[string, Array], tags TagSet) (*FunctionDefinition, error) {
	var errs error
	paramSet := make(map[string]bool, len(params))
	for _, param := range params {
		if param == "" {
			errs = multierr.Append(errs, errors.Errorf("empty parameter name"))
			continue
		}
		if paramSet[param] {
			errs = multierr.Append(errs, errors.Errorf("parameter %s defined more than once", param))
		}
		paramSet[param] = true
	}
	switch rt {
	case ReturnArray:
		if returns.Size() != 1 || !returns.Has(SingleReturnName) {
			errs = multierr.Append(errs, errors.Errorf("a function returning an array requires a single return named %q", SingleReturnName))
		}
	case ReturnDictOfArrays:
	default:
		errs = multierr.Append(errs, errors.Errorf("invalid return type %s", rt.String()))
	}
	phs, err := collectPlaceholders(returns)
	errs = multierr.Append(errs, err)
	for _, name := range slices.Sorted(maps.Keys(phs)) {
		if !paramSet[name] {
			errs = multierr.Append(errs, errors.Errorf("placeholder %s is not a parameter of the function", name))
		}
	}
	if errs != nil {
		return nil, errors.WithStack(errs)
	}
	fn := &FunctionDefinition{
		params:       slices.Sorted(maps.Keys(paramSet)),
		rt:           rt,
		returns:      returns,
		tags:         tags,
		placeholders: phs,
	}
	fn.fingerprint = fingerprint(fn)
	return fn, nil
}

// Parameters returns the sorted names of the parameters of the function.
func (fn *FunctionDefinition) Parameters() []string {
	return slices.Clone(fn.params)
}

// ReturnType returns the kind of value returned by the function.
func (fn *FunctionDefinition) ReturnType() ReturnType {
	return fn.rt
}

// Returns the arrays returned by the function.
func (fn *FunctionDefinition) Returns() *ordered.Frozen[string, Array] {
	return fn.returns
}

// ReturnNames returns the names of the outputs in the order in which they were defined.
func (fn *FunctionDefinition) ReturnNames() []string {
	return slices.Collect(fn.returns.Keys())
}

// Tags attached to the function.
func (fn *FunctionDefinition) Tags() TagSet {
	return fn.tags
}

// Fingerprint returns a structural hash of the function.
// Functions built from the same sequence of operations on placeholders
// of the same names and shapes have the same fingerprint.
func (fn *FunctionDefinition) Fingerprint() uint64 {
	return fn.fingerprint
}

func (fn *FunctionDefinition) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "func(%s) %s %s {\n", strings.Join(fn.params, ", "), fn.rt.String(), fn.tags.String())
	for name, ret := range fn.returns.Iter() {
		b.WriteString(gxfmt.Indent(fmt.Sprintf("%s = %s", name, Tree(ret))))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// Call returns a call site of the function given bindings for all its parameters.
func (fn *FunctionDefinition) Call(bindings map[string]Array) (*Call, error) {
	var errs error
	for _, param := range fn.params {
		arg, ok := bindings[param]
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("missing binding for parameter %s", param))
			continue
		}
		if arg == nil {
			errs = multierr.Append(errs, errors.Errorf("parameter %s bound to nil", param))
			continue
		}
		ph, ok := fn.placeholders[param]
		if !ok {
			continue
		}
		if !kernels.SameShape(ph.Shape(), arg.Shape()) {
			errs = multierr.Append(errs, errors.Errorf("parameter %s of shape %s bound to an array of shape %s", param, ph.Shape().String(), arg.Shape().String()))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(bindings)) {
		if !slices.Contains(fn.params, name) {
			errs = multierr.Append(errs, errors.Errorf("binding %s is not a parameter of the function", name))
		}
	}
	if errs != nil {
		return nil, errors.WithStack(errs)
	}
	call := &Call{
		fn:       fn,
		bindings: maps.Clone(bindings),
		outputs:  ordered.NewMap[string, *CallResult](),
	}
	for name, ret := range fn.returns.Iter() {
		call.outputs.Store(name, &CallResult{
			call:  call,
			name:  name,
			shape: ret.Shape(),
		})
	}
	return call, nil
}

// Call is a call site of a function definition.
type Call struct {
	fn       *FunctionDefinition
	bindings map[string]Array
	outputs  *ordered.Map[string, *CallResult]
}

var _ Node = (*Call)(nil)

// Function called by the call site.
func (c *Call) Function() *FunctionDefinition {
	return c.fn
}

// Bindings returns a copy of the arrays bound to the parameters of the function.
func (c *Call) Bindings() map[string]Array {
	return maps.Clone(c.bindings)
}

// OutputNames returns the names of the outputs of the call.
func (c *Call) OutputNames() []string {
	return slices.Collect(c.outputs.Keys())
}

// Output returns an output of the call given its name.
func (c *Call) Output(name string) (*CallResult, error) {
	out, ok := c.outputs.Load(name)
	if !ok {
		return nil, errors.Errorf("function has no output %q: available outputs are %v", name, c.OutputNames())
	}
	return out, nil
}

// Result returns the output of a call to a function returning a single array.
func (c *Call) Result() (*CallResult, error) {
	if c.fn.rt != ReturnArray {
		return nil, errors.Errorf("function returning %s has no single result", c.fn.rt.String())
	}
	return c.Output(SingleReturnName)
}

// Deps returns the arrays bound to the parameters in parameter order.
func (c *Call) Deps() []Node {
	deps := make([]Node, len(c.fn.params))
	for i, param := range c.fn.params {
		deps[i] = c.bindings[param]
	}
	return deps
}

func (c *Call) String() string {
	return fmt.Sprintf("Call(%016x)", c.fn.fingerprint)
}

// CallResult is one of the outputs of a call site.
type CallResult struct {
	call  *Call
	name  string
	shape *shape.Shape
}

var _ Array = (*CallResult)(nil)

// Call site producing the result.
func (n *CallResult) Call() *Call {
	return n.call
}

// Name of the output in the function definition.
func (n *CallResult) Name() string {
	return n.name
}

// Shape of the result.
func (n *CallResult) Shape() *shape.Shape {
	return n.shape
}

// Deps returns the call site.
func (n *CallResult) Deps() []Node {
	return []Node{n.call}
}

func (n *CallResult) String() string {
	return fmt.Sprintf("CallResult(%s)", n.name)
}

func (n *CallResult) eval(fr *frame) (kernels.Array, error) {
	outs, err := fr.call(n.call)
	if err != nil {
		return nil, err
	}
	return outs[n.name], nil
}
