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

// Package fmtarray formats arrays into string.
package fmtarray

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
)

const tab = "\t"

func toValue[T dtype.GoDataType](x T) string {
	var result string
	switch xT := any(x).(type) {
	case float32:
		result = fmt.Sprintf("%.6f", xT)
	case float64:
		result = fmt.Sprintf("%.10f", xT)
	default:
		return fmt.Sprint(x)
	}
	if strings.ContainsRune(result, '.') {
		// Remove trailing zeroes after the decimal point, and the point itself
		// if there are no digits after it.
		result = strings.TrimRight(result, "0")
		result = strings.TrimSuffix(result, ".")
	}
	return result
}

// writeRec writes the values of data, a row-major array with the given axes.
func writeRec[T dtype.GoDataType](w *strings.Builder, indent string, data []T, axes []int) {
	if len(axes) == 1 {
		vals := make([]string, len(data))
		for i, x := range data {
			vals[i] = toValue(x)
		}
		fmt.Fprintf(w, "{%s}", strings.Join(vals, ", "))
		return
	}
	stride := 1
	for _, size := range axes[1:] {
		stride *= size
	}
	w.WriteString("{\n")
	for i := range axes[0] {
		w.WriteString(indent + tab)
		writeRec(w, indent+tab, data[i*stride:(i+1)*stride], axes[1:])
		w.WriteString(",\n")
	}
	w.WriteString(indent + "}")
}

func checkSize[T dtype.GoDataType](data []T, axes []int) error {
	total := 1
	for _, size := range axes {
		total *= size
	}
	if total != len(data) {
		return errors.Errorf("len(data)=%d does not match axes %v=%d", len(data), axes, total)
	}
	return nil
}

// SDataPrint returns a string representation of the content of an array without the type.
func SDataPrint[T dtype.GoDataType](data []T, axes []int) string {
	if err := checkSize(data, axes); err != nil {
		return err.Error()
	}
	var w strings.Builder
	if len(axes) == 0 {
		fmt.Fprintf(&w, "(%s)", toValue(data[0]))
		return w.String()
	}
	writeRec(&w, "", data, axes)
	return w.String()
}

// Sprint returns a string representation of an array.
func Sprint[T dtype.GoDataType](data []T, axes []int) string {
	var w strings.Builder
	for _, size := range axes {
		fmt.Fprintf(&w, "[%d]", size)
	}
	var zero T
	fmt.Fprintf(&w, "%T", zero)
	w.WriteString(SDataPrint(data, axes))
	return w.String()
}
