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
	"fmt"

	gxfmt "github.com/gx-org/outliner/base/fmt"
)

type (
	// InvalidArgumentKindError is returned when an argument, or a leaf of a
	// container argument, is neither a scalar, an array nor a container.
	InvalidArgumentKindError struct {
		ID    ArgID
		Value any
	}

	// UnsupportedArgumentTypeError is returned when no placeholder can be
	// substituted for an argument.
	UnsupportedArgumentTypeError struct {
		Value any
	}

	// UnsupportedReturnTypeError is returned when an outlined function returns
	// a value which is neither an array nor a container of arrays.
	UnsupportedReturnTypeError struct {
		Value any
	}
)

func (err *InvalidArgumentKindError) Error() string {
	return fmt.Sprintf("argument %s should be either a scalar, an array or an array container: got %s", err.ID.String(), gxfmt.Value(err.Value))
}

func (err *UnsupportedArgumentTypeError) Error() string {
	return fmt.Sprintf("cannot substitute a placeholder for %s", gxfmt.Value(err.Value))
}

func (err *UnsupportedReturnTypeError) Error() string {
	return fmt.Sprintf("outlined function should return an array or an array container: got %s", gxfmt.Value(err.Value))
}
