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
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/gx-org/outliner/base/uname"
	"github.com/xlab/treeprint"
)

// walk calls f once for every node reachable from the roots, dependencies first.
// Function bodies of call sites are not visited.
func walk(roots []Node, f func(Node)) {
	visited := make(map[Node]bool)
	var visit func(Node)
	visit = func(n Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		for _, dep := range n.Deps() {
			visit(dep)
		}
		f(n)
	}
	for _, root := range roots {
		visit(root)
	}
}

// NumNodes returns the number of distinct nodes reachable from the outputs,
// call sites included.
func NumNodes(outs ...Node) int {
	num := 0
	walk(outs, func(Node) { num++ })
	return num
}

// CallSites returns the call sites reachable from the outputs.
func CallSites(outs ...Node) []*Call {
	var calls []*Call
	walk(outs, func(n Node) {
		if call, ok := n.(*Call); ok {
			calls = append(calls, call)
		}
	})
	return calls
}

// NumCallSites returns the number of call sites reachable from the outputs.
func NumCallSites(outs ...Node) int {
	return len(CallSites(outs...))
}

func nodeKind(n Node) string {
	switch n.(type) {
	case *Placeholder:
		return "placeholder"
	case *DataWrapper:
		return "data"
	case *Constant:
		return "constant"
	case *Binary, *Unary:
		return "op"
	case *MathUnary, *MathBinary:
		return "math"
	case *Call:
		return "call"
	case *CallResult:
		return "result"
	default:
		return "node"
	}
}

type treeBuilder struct {
	names  *uname.Unique
	labels map[Node]string
}

func (b *treeBuilder) add(t treeprint.Tree, n Node) {
	if n == nil {
		t.AddNode("<nil>")
		return
	}
	if label, ok := b.labels[n]; ok {
		t.AddNode("^" + label)
		return
	}
	label := b.names.Name(nodeKind(n))
	b.labels[n] = label
	value := fmt.Sprintf("%s = %s", label, n.String())
	deps := n.Deps()
	if len(deps) == 0 {
		t.AddNode(value)
		return
	}
	branch := t.AddBranch(value)
	for _, dep := range deps {
		b.add(branch, dep)
	}
}

// Tree returns a string representation of the graph computing the outputs.
// A node already printed is referred to by its label prefixed with ^.
func Tree(outs ...Node) string {
	b := &treeBuilder{
		names:  uname.New(),
		labels: make(map[Node]string),
	}
	root := treeprint.New()
	for _, out := range outs {
		b.add(root, out)
	}
	return root.String()
}

type hasher struct {
	memo map[Node]uint64
}

func (h *hasher) hash(n Node) uint64 {
	if n == nil {
		return 0
	}
	if v, ok := h.memo[n]; ok {
		return v
	}
	buf := fmt.Appendf(nil, "%T:", n)
	switch nT := n.(type) {
	case *DataWrapper:
		// Concrete data is identified by the node holding it.
		buf = fmt.Appendf(buf, "%p", nT)
	case *Call:
		buf = binary.LittleEndian.AppendUint64(buf, nT.fn.fingerprint)
	default:
		buf = append(buf, n.String()...)
	}
	for _, dep := range n.Deps() {
		buf = binary.LittleEndian.AppendUint64(buf, h.hash(dep))
	}
	v := xxhash.Sum64(buf)
	h.memo[n] = v
	return v
}

func fingerprint(fn *FunctionDefinition) uint64 {
	h := &hasher{memo: make(map[Node]uint64)}
	buf := fmt.Appendf(nil, "%q %s %s", fn.params, fn.rt.String(), fn.tags.String())
	for name, ret := range fn.returns.Iter() {
		buf = fmt.Appendf(buf, " %q:", name)
		buf = binary.LittleEndian.AppendUint64(buf, h.hash(ret))
	}
	return xxhash.Sum64(buf)
}
