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
	"strconv"
	"strings"

	"github.com/gx-org/outliner/container"
)

// ArgID identifies a leaf in the arguments of a call.
// The first key is the position or the keyword of the argument;
// the other keys are the path of the leaf in a container argument.
type ArgID = container.Path

const (
	inputPrefix  = "_outline_in_"
	outputPrefix = "_outline_out_"
)

// keyString returns an injective string representation of a path.
// Indices are written as decimal numbers and names as <length>s<name>.
func keyString(id container.Path) string {
	var b strings.Builder
	for i, key := range id {
		if i > 0 {
			b.WriteByte('_')
		}
		if key.IsIndex() {
			b.WriteString(strconv.Itoa(key.Index()))
			continue
		}
		b.WriteString(strconv.Itoa(len(key.Name())))
		b.WriteByte('s')
		b.WriteString(key.Name())
	}
	return b.String()
}

// InputName returns the name of the parameter of an outlined function for an argument leaf.
func InputName(id ArgID) string {
	return inputPrefix + keyString(id)
}

// OutputName returns the name of the output of an outlined function for a leaf of
// the container it returns.
func OutputName(id container.Path) string {
	return outputPrefix + keyString(id)
}
