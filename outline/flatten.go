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

package outline

import (
	"github.com/pkg/errors"
	"github.com/gx-org/outliner/base/ordered"
	"github.com/gx-org/outliner/container"
	"github.com/gx-org/outliner/graph"
)

// input is an array leaf of the arguments of a call.
type input struct {
	id    ArgID
	value graph.Array
}

// inputs maps input names to the array leaves of the arguments, in traversal order.
type inputs = ordered.Frozen[string, input]

// leafError converts an error on a leaf of a container argument to an
// InvalidArgumentKindError identifying the leaf from the root of the arguments.
func leafError(id ArgID, err error) error {
	if nilErr := (*container.NilLeafError)(nil); errors.As(err, &nilErr) {
		return errors.WithStack(&InvalidArgumentKindError{ID: id.Append(nilErr.Path...)})
	}
	if leafErr := (*container.InvalidLeafError)(nil); errors.As(err, &leafErr) {
		return errors.WithStack(&InvalidArgumentKindError{
			ID:    id.Append(leafErr.Path...),
			Value: leafErr.Value,
		})
	}
	return err
}

func flattenArg(ins *ordered.Map[string, input], id ArgID, arg any) error {
	switch kindOf(arg) {
	case scalarKind:
		// Scalars are inlined in the traced function.
		return nil
	case arrayKind:
		ins.Store(InputName(id), input{id: id, value: arg.(graph.Array)})
		return nil
	case containerKind:
		leaves, err := container.Leaves(arg)
		if err != nil {
			return leafError(id, err)
		}
		for _, leaf := range leaves {
			leafID := id.Append(leaf.Path...)
			ins.Store(InputName(leafID), input{id: leafID, value: leaf.Array})
		}
		return nil
	}
	return errors.WithStack(&InvalidArgumentKindError{ID: id, Value: arg})
}

// flattenInputs returns the array leaves of positional and keyword arguments.
func flattenInputs(args []any, kwargs []Keyword) (*inputs, error) {
	ins := ordered.NewMap[string, input]()
	for i, arg := range args {
		if err := flattenArg(ins, ArgID{container.Index(i)}, arg); err != nil {
			return nil, err
		}
	}
	seen := make(map[string]bool, len(kwargs))
	for _, kw := range kwargs {
		id := ArgID{container.Name(kw.Name)}
		if seen[kw.Name] {
			return nil, errors.Wrapf(&InvalidArgumentKindError{ID: id, Value: kw.Value}, "keyword %q given more than once", kw.Name)
		}
		seen[kw.Name] = true
		if err := flattenArg(ins, id, kw.Value); err != nil {
			return nil, err
		}
	}
	return ins.Freeze(), nil
}

func newPlaceholder(id ArgID, x graph.Array) (graph.Array, error) {
	ph, err := graph.NewPlaceholder(InputName(id), x.Shape())
	if err != nil {
		return nil, err
	}
	return ph, nil
}

// substitute returns an argument in which all array leaves have been replaced by placeholders.
func substitute(id ArgID, arg any) (any, error) {
	switch kindOf(arg) {
	case scalarKind:
		return arg, nil
	case arrayKind:
		return newPlaceholder(id, arg.(graph.Array))
	case containerKind:
		sub, err := container.KeyedMap(func(path container.Path, x graph.Array) (graph.Array, error) {
			return newPlaceholder(id.Append(path...), x)
		}, arg)
		if err != nil {
			return nil, errors.Wrap(&UnsupportedArgumentTypeError{Value: arg}, err.Error())
		}
		return sub, nil
	}
	return nil, errors.WithStack(&UnsupportedArgumentTypeError{Value: arg})
}

func substituteAll(args []any, kwargs []Keyword) ([]any, []Keyword, error) {
	phArgs := make([]any, len(args))
	for i, arg := range args {
		var err error
		if phArgs[i], err = substitute(ArgID{container.Index(i)}, arg); err != nil {
			return nil, nil, err
		}
	}
	phKwargs := make([]Keyword, len(kwargs))
	for i, kw := range kwargs {
		val, err := substitute(ArgID{container.Name(kw.Name)}, kw.Value)
		if err != nil {
			return nil, nil, err
		}
		phKwargs[i] = Keyword{Name: kw.Name, Value: val}
	}
	return phArgs, phKwargs, nil
}

// flattenOutput returns the arrays returned by a traced function keyed by their output names.
func flattenOutput(out any) (graph.ReturnType, *ordered.Frozen[string, graph.Array], error) {
	returns := ordered.NewMap[string, graph.Array]()
	switch kindOf(out) {
	case arrayKind:
		returns.Store(graph.SingleReturnName, out.(graph.Array))
		return graph.ReturnArray, returns.Freeze(), nil
	case containerKind:
		leaves, err := container.Leaves(out)
		if err != nil {
			return 0, nil, errors.Wrap(&UnsupportedReturnTypeError{Value: out}, err.Error())
		}
		for _, leaf := range leaves {
			returns.Store(OutputName(leaf.Path), leaf.Array)
		}
		return graph.ReturnDictOfArrays, returns.Freeze(), nil
	}
	return 0, nil, errors.WithStack(&UnsupportedReturnTypeError{Value: out})
}

// repackage returns the outputs of a call site in the shape of the value returned by the traced function.
func repackage(call *graph.Call, rt graph.ReturnType, out any) (any, error) {
	if rt == graph.ReturnArray {
		res, err := call.Result()
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return container.KeyedMap(func(path container.Path, _ graph.Array) (graph.Array, error) {
		res, err := call.Output(OutputName(path))
		if err != nil {
			return nil, err
		}
		return res, nil
	}, out)
}
