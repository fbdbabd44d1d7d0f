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
	"testing"

	"github.com/gx-org/outliner/container"
	"github.com/gx-org/outliner/golang/backend/kernels"
	"github.com/gx-org/outliner/graph"
)

type celsius float32

func TestKindOf(t *testing.T) {
	a, err := kernels.FromSlice([]float32{1})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	x := graph.NewDataWrapper(a)
	tests := []struct {
		val  any
		want argKind
	}{
		{val: 1, want: scalarKind},
		{val: uint8(1), want: scalarKind},
		{val: float32(1), want: scalarKind},
		{val: 1.5, want: scalarKind},
		{val: complex(1, 2), want: scalarKind},
		{val: true, want: scalarKind},
		{val: celsius(20), want: scalarKind},
		{val: x, want: arrayKind},
		{val: graph.Array(x), want: arrayKind},
		{val: (*graph.DataWrapper)(nil), want: invalidKind},
		{val: container.ObjArray{x}, want: containerKind},
		{val: []graph.Array{x}, want: containerKind},
		{val: "x", want: invalidKind},
		{val: []float32{1}, want: invalidKind},
		{val: [1]graph.Array{x}, want: invalidKind},
		{val: nil, want: invalidKind},
	}
	for i, test := range tests {
		if got := kindOf(test.val); got != test.want {
			t.Errorf("test %d: kindOf(%T) = %d but want %d", i, test.val, got, test.want)
		}
	}
}
