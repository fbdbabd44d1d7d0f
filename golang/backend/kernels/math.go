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

package kernels

import (
	"github.com/gx-org/backend/shape"
)

type mathFactory[T Numeric] struct{}

// Kernelize turns a unary Go math function into a unary kernel.
// Values are computed in float64 and converted back to the array data type.
func (mathFactory[T]) Kernelize(f func(float64) float64) Unary {
	return apply1(func(v T) T { return T(f(float64(v))) })
}

// Kernelize2 turns a binary Go math function into a binary kernel.
func (mathFactory[T]) Kernelize2(f func(float64, float64) float64, x, y *shape.Shape) (Binary, *shape.Shape, error) {
	out, err := Broadcast(x, y)
	if err != nil {
		return nil, nil, err
	}
	return apply2(out, func(xv, yv T) (T, error) {
		return T(f(float64(xv), float64(yv))), nil
	}), out, nil
}
