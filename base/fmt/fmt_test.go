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

package fmt_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	gxfmt "github.com/gx-org/outliner/base/fmt"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		skip      int
		txt, want string
	}{
		{
			txt: `
a
b
`,
			want: `
	a
	b
`,
		},
		{
			skip: 1,
			txt: `
header {
x
}
`,
			want: `
header {
	x
	}
`,
		},
	}
	for i, test := range tests {
		got := gxfmt.IndentSkip(test.skip, strings.TrimPrefix(test.txt, "\n"))
		want := strings.TrimPrefix(test.want, "\n")
		if got != want {
			t.Errorf("test %d: got:\n%s\nbut want:\n%s\ndiff:\n%s", i, got, want, cmp.Diff(got, want))
		}
	}
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestValue(t *testing.T) {
	var nilStringer *stringer
	tests := []struct {
		val  any
		want string
	}{
		{val: nil, want: "nil"},
		{val: "abc", want: "abc (type string)"},
		{val: 4.5, want: "4.5 (type float64)"},
		{val: stringer{}, want: "stringer (type fmt_test.stringer)"},
		{val: nilStringer, want: "*fmt_test.stringer(nil) (type *fmt_test.stringer)"},
	}
	for i, test := range tests {
		got := gxfmt.Value(test.val)
		if got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
}
