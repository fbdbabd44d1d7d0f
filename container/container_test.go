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

package container_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/gx-org/outliner/container"
	"github.com/gx-org/outliner/golang/backend/kernels"
	"github.com/gx-org/outliner/graph"
)

type (
	state struct {
		Mass     graph.Array
		Vel      container.ObjArray
		Momentum graph.Array `array:"p"`
		Hidden   graph.Array `array:"-"`
		Dt       float64
	}

	pointerState struct {
		X *graph.DataWrapper
	}

	notContainer struct {
		X graph.Array
	}

	nested struct {
		Inner *state
		Extra any
	}
)

func (nested) ArrayContainer() {}

func (state) ArrayContainer() {}

func (*pointerState) ArrayContainer() {}

func data(t *testing.T, vals ...float32) *graph.DataWrapper {
	a, err := kernels.FromSlice(vals, len(vals))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return graph.NewDataWrapper(a)
}

func paths(leaves []container.Leaf) []string {
	strs := make([]string, len(leaves))
	for i, leaf := range leaves {
		strs[i] = leaf.Path.String()
	}
	return strs
}

func TestIsContainer(t *testing.T) {
	tests := []struct {
		val  any
		want bool
	}{
		{val: state{}, want: true},
		{val: &state{}, want: true},
		{val: pointerState{}, want: true},
		{val: &pointerState{}, want: true},
		{val: (*state)(nil), want: false},
		{val: container.ObjArray{}, want: true},
		{val: []graph.Array{}, want: true},
		{val: []state{}, want: true},
		{val: []container.ObjArray{}, want: true},
		{val: notContainer{}, want: false},
		{val: []float64{}, want: false},
		{val: map[string]graph.Array{}, want: false},
		{val: [2]graph.Array{}, want: false},
		{val: "mass", want: false},
		{val: 1.5, want: false},
		{val: nil, want: false},
	}
	for i, test := range tests {
		if got := container.IsContainer(test.val); got != test.want {
			t.Errorf("test %d: IsContainer(%T) = %v but want %v", i, test.val, got, test.want)
		}
	}
	if !container.IsContainerType(reflect.TypeFor[container.ObjArray]()) {
		t.Errorf("ObjArray is not a container type")
	}
}

func TestLeaves(t *testing.T) {
	st := state{
		Mass:     data(t, 1),
		Vel:      container.ObjArray{data(t, 2), data(t, 3), 4.5, []graph.Array{data(t, 5)}},
		Momentum: data(t, 6),
		Hidden:   data(t, 7),
		Dt:       0.1,
	}
	leaves, err := container.Leaves(st)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := []string{"(Mass)", "(Vel, 0)", "(Vel, 1)", "(Vel, 3, 0)", "(p)"}
	if got := paths(leaves); !cmp.Equal(got, want) {
		t.Errorf("got paths %v but want %v", got, want)
	}
	if leaves[0].Array != st.Mass {
		t.Errorf("first leaf is not the mass")
	}
}

func TestKeyedMap(t *testing.T) {
	st := &state{
		Mass:     data(t, 1, 2),
		Vel:      container.ObjArray{data(t, 3)},
		Momentum: data(t, 4),
		Hidden:   data(t, 5),
		Dt:       0.25,
	}
	replaced := make(map[string]graph.Array)
	out, err := container.KeyedMap(func(path container.Path, x graph.Array) (graph.Array, error) {
		ph, err := graph.NewPlaceholder("ph"+path.String(), x.Shape())
		if err != nil {
			return nil, err
		}
		replaced[path.String()] = ph
		return ph, nil
	}, st)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	got, ok := out.(*state)
	if !ok {
		t.Fatalf("got %T but want %T", out, st)
	}
	if got == st {
		t.Errorf("KeyedMap returned its input")
	}
	if got.Mass != replaced["(Mass)"] || got.Vel[0] != replaced["(Vel, 0)"] || got.Momentum != replaced["(p)"] {
		t.Errorf("leaves have not been replaced: %v", got)
	}
	if got.Hidden != st.Hidden {
		t.Errorf("ignored field has been modified")
	}
	if got.Dt != st.Dt {
		t.Errorf("got Dt=%f but want %f", got.Dt, st.Dt)
	}
	if _, isPlaceholder := st.Mass.(*graph.Placeholder); isPlaceholder {
		t.Errorf("input container has been modified")
	}
}

func TestMap(t *testing.T) {
	in := []graph.Array{data(t, 1), data(t, 2)}
	calls := 0
	out, err := container.Map(func(x graph.Array) (graph.Array, error) {
		calls++
		return x, nil
	}, in)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if calls != 2 {
		t.Errorf("function called %d times but want 2", calls)
	}
	if _, ok := out.([]graph.Array); !ok {
		t.Errorf("got %T but want []graph.Array", out)
	}
}

func TestErrors(t *testing.T) {
	identity := func(_ container.Path, x graph.Array) (graph.Array, error) { return x, nil }
	_, err := container.KeyedMap(identity, state{Vel: container.ObjArray{data(t, 1), nil}, Mass: data(t, 1), Momentum: data(t, 1)})
	var nilErr *container.NilLeafError
	if !errors.As(err, &nilErr) {
		t.Fatalf("got error %v but want a nil leaf error", err)
	}
	if want := (container.Path{container.Name("Vel"), container.Index(1)}); !nilErr.Path.Equal(want) {
		t.Errorf("got path %s but want %s", nilErr.Path, want)
	}

	toPlaceholder := func(_ container.Path, x graph.Array) (graph.Array, error) {
		return graph.NewPlaceholder("x", x.Shape())
	}
	if _, err := container.KeyedMap(toPlaceholder, &pointerState{X: data(t, 1)}); err == nil {
		t.Errorf("expected an assignment error but got nil")
	}
	if _, err := container.KeyedMap(identity, notContainer{}); err == nil {
		t.Errorf("expected a not a container error but got nil")
	}
}

func TestInvalidLeaves(t *testing.T) {
	valid := &state{Mass: data(t, 1), Momentum: data(t, 2)}
	tests := []struct {
		val  any
		want container.Path
	}{
		{
			val:  container.ObjArray{data(t, 1), "not an array"},
			want: container.Path{container.Index(1)},
		},
		{
			val:  container.ObjArray{data(t, 1), map[string]graph.Array{}},
			want: container.Path{container.Index(1)},
		},
		{
			val:  nested{Inner: valid, Extra: struct{}{}},
			want: container.Path{container.Name("Extra")},
		},
		{
			val:  nested{Extra: 1.0},
			want: container.Path{container.Name("Inner")},
		},
		{
			val:  container.ObjArray{(*state)(nil)},
			want: container.Path{container.Index(0)},
		},
	}
	for i, test := range tests {
		_, err := container.Leaves(test.val)
		var leafErr *container.InvalidLeafError
		if !errors.As(err, &leafErr) {
			t.Errorf("test %d: got error %v but want an invalid leaf error", i, err)
			continue
		}
		if !leafErr.Path.Equal(test.want) {
			t.Errorf("test %d: got path %s but want %s", i, leafErr.Path, test.want)
		}
	}
	leaves, err := container.Leaves(nested{Inner: valid, Extra: 2})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got, want := paths(leaves), []string{"(Inner, Mass)", "(Inner, p)"}; !cmp.Equal(got, want) {
		t.Errorf("got paths %v but want %v", got, want)
	}
}

func TestPath(t *testing.T) {
	base := container.Path{container.Index(0)}
	a := base.Append(container.Name("mass"))
	b := base.Append(container.Name("vel"))
	if a.Equal(b) {
		t.Errorf("%s and %s are equal", a, b)
	}
	if got, want := a.String(), "(0, mass)"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	if len(base) != 1 {
		t.Errorf("Append modified its receiver: %s", base)
	}
	if !a[0].IsIndex() || a[1].IsIndex() || a[1].Name() != "mass" {
		t.Errorf("unexpected keys in %s", a)
	}
}
