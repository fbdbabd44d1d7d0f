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

package fmtarray_test

import (
	"strings"
	"testing"

	"github.com/gx-org/outliner/fmt/fmtarray"
)

func iota32(axes []int) []int32 {
	total := 1
	for _, axisSize := range axes {
		total *= axisSize
	}
	data := make([]int32, total)
	for i := range data {
		data[i] = int32(i)
	}
	return data
}

func TestSprintInt32(t *testing.T) {
	tests := []struct {
		data []int32
		axes []int
		want string
	}{
		{
			data: []int32{42},
			want: "int32(42)",
		},
		{
			data: []int32{1, 2, 3},
			axes: []int{3},
			want: "[3]int32{1, 2, 3}",
		},
		{
			axes: []int{2, 3},
			want: `
[2][3]int32{
	{0, 1, 2},
	{3, 4, 5},
}
`,
		},
		{
			axes: []int{2, 2, 2},
			want: `
[2][2][2]int32{
	{
		{0, 1},
		{2, 3},
	},
	{
		{4, 5},
		{6, 7},
	},
}
`,
		},
	}
	for i, test := range tests {
		if test.data == nil {
			test.data = iota32(test.axes)
		}
		want := strings.TrimSpace(test.want)
		got := fmtarray.Sprint(test.data, test.axes)
		if got != want {
			t.Errorf("test %d: incorrect array formatting:\naxes: %v\ngot:\n%s\nwant:\n%s\n", i, test.axes, got, want)
		}
	}
}

func TestSDataPrintFloats(t *testing.T) {
	tests := []struct {
		data []float64
		axes []int
		want string
	}{
		{
			data: []float64{1.5},
			want: "(1.5)",
		},
		{
			data: []float64{1, 0.25, -3},
			axes: []int{3},
			want: "{1, 0.25, -3}",
		},
		{
			data: []float64{1, 2},
			axes: []int{3},
			want: "len(data)=2 does not match axes [3]=3",
		},
	}
	for i, test := range tests {
		got := fmtarray.SDataPrint(test.data, test.axes)
		if got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
}
