// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package array

import (
	"strings"
	"sync/atomic"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/goccy/go-json"
)

// array is the state shared by every array type.
type array struct {
	refCount int64
	dtype    arrow.DataType
	length   int
	validity *bitmap.Bitmap
	nulls    int
}

func (a *array) init(dt arrow.DataType, length int, validity *bitmap.Bitmap) {
	if validity != nil {
		if validity.Len() != length {
			panic("arrow/array: validity length does not match array length")
		}
		validity.Retain()
		a.nulls = validity.UnsetBits()
	}
	a.refCount = 1
	a.dtype = dt
	a.length = length
	a.validity = validity
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (a *array) Retain() {
	atomic.AddInt64(&a.refCount, 1)
}

// release decrements the reference count and reports whether it reached
// zero, in which case the validity has already been released.
func (a *array) release() bool {
	debug.Assert(atomic.LoadInt64(&a.refCount) > 0, "too many releases")

	if atomic.AddInt64(&a.refCount, -1) != 0 {
		return false
	}
	if a.validity != nil {
		a.validity.Release()
		a.validity = nil
	}
	return true
}

// DataType returns the type metadata for this instance.
func (a *array) DataType() arrow.DataType { return a.dtype }

// NullN returns the number of null values in the array.
func (a *array) NullN() int { return a.nulls }

// Validity returns the validity bitmap, nil when every slot is valid.
func (a *array) Validity() *bitmap.Bitmap { return a.validity }

// Len returns the number of elements in the array.
func (a *array) Len() int { return a.length }

// IsNull returns true if value at index is null.
// NOTE: IsNull will panic if Validity is not empty and 0 > i ≥ Len.
func (a *array) IsNull(i int) bool {
	return a.validity != nil && !a.validity.Value(i)
}

// IsValid returns true if value at index is not null.
// NOTE: IsValid will panic if Validity is not empty and 0 > i ≥ Len.
func (a *array) IsValid(i int) bool {
	return a.validity == nil || a.validity.Value(i)
}

// sliceValidity returns the validity of [i, j), or nil without nulls.
func (a *array) sliceValidity(i, j int) *bitmap.Bitmap {
	if a.validity == nil {
		return nil
	}
	return a.validity.Slice(i, j-i)
}

func formatArray(a arrow.Array, value func(i int) string) string {
	var o strings.Builder
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		if a.IsNull(i) {
			o.WriteString(NullValueStr)
			continue
		}
		o.WriteString(value(i))
	}
	o.WriteString("]")
	return o.String()
}

func marshalArray(a arrow.Array) ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		vals[i] = a.GetOneForMarshal(i)
	}
	return json.Marshal(vals)
}

// NullValueStr is how a null slot is rendered by String.
const NullValueStr = "(null)"
