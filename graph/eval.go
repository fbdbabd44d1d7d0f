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
	"github.com/pkg/errors"
	"github.com/gx-org/outliner/golang/backend/kernels"
)

// frame stores the values computed while evaluating a graph.
// Calling a function creates a new frame in which its placeholders are bound.
type frame struct {
	params map[string]kernels.Array
	values map[Array]kernels.Array
	calls  map[*Call]map[string]kernels.Array
}

func newFrame(params map[string]kernels.Array) *frame {
	return &frame{
		params: params,
		values: make(map[Array]kernels.Array),
		calls:  make(map[*Call]map[string]kernels.Array),
	}
}

func (fr *frame) eval(n Array) (kernels.Array, error) {
	if val, ok := fr.values[n]; ok {
		return val, nil
	}
	val, err := n.eval(fr)
	if err != nil {
		return nil, err
	}
	fr.values[n] = val
	return val, nil
}

// call evaluates a call site once and returns all its outputs.
func (fr *frame) call(c *Call) (map[string]kernels.Array, error) {
	if outs, ok := fr.calls[c]; ok {
		return outs, nil
	}
	args := make(map[string]kernels.Array, len(c.bindings))
	for name, binding := range c.bindings {
		val, err := fr.eval(binding)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot evaluate argument %s", name)
		}
		args[name] = val
	}
	callee := newFrame(args)
	outs := make(map[string]kernels.Array, c.fn.returns.Size())
	for name, ret := range c.fn.returns.Iter() {
		val, err := callee.eval(ret)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot evaluate output %s", name)
		}
		outs[name] = val
	}
	fr.calls[c] = outs
	return outs, nil
}

// Evaluate computes the values of arrays on the host.
func Evaluate(outs ...Array) ([]kernels.Array, error) {
	return EvaluateWith(nil, outs...)
}

// EvaluateWith computes the values of arrays on the host given values for placeholders.
// Nodes shared between outputs are computed once.
func EvaluateWith(params map[string]kernels.Array, outs ...Array) ([]kernels.Array, error) {
	fr := newFrame(params)
	vals := make([]kernels.Array, len(outs))
	for i, out := range outs {
		if out == nil {
			return nil, errors.Errorf("cannot evaluate output %d: nil array", i)
		}
		var err error
		if vals[i], err = fr.eval(out); err != nil {
			return nil, err
		}
	}
	return vals, nil
}
