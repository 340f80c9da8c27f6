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
	"strconv"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
)

// A Boolean is an array of bit-packed boolean values.
type Boolean struct {
	array
	values *bitmap.Bitmap
}

// NewBoolean returns a Boolean array over values. A nil validity means
// every slot is valid.
func NewBoolean(values *bitmap.Bitmap, validity *bitmap.Bitmap) *Boolean {
	a := &Boolean{values: values}
	a.array.init(arrow.FixedWidthTypes.Boolean, values.Len(), validity)
	values.Retain()
	return a
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (a *Boolean) Release() {
	if a.array.release() {
		a.values.Release()
		a.values = nil
	}
}

// Value returns the value at index i. Null slots hold false.
func (a *Boolean) Value(i int) bool { return a.values.Value(i) }

// Values returns the value bitmap.
func (a *Boolean) Values() *bitmap.Bitmap { return a.values }

func (a *Boolean) String() string {
	return formatArray(a, func(i int) string { return strconv.FormatBool(a.Value(i)) })
}

func (a *Boolean) GetOneForMarshal(i int) interface{} {
	if a.IsValid(i) {
		return a.Value(i)
	}
	return nil
}

func (a *Boolean) MarshalJSON() ([]byte, error) { return marshalArray(a) }

func (a *Boolean) slice(i, j int) arrow.Array {
	values := a.values.Slice(i, j-i)
	defer values.Release()
	validity := a.sliceValidity(i, j)
	if validity != nil {
		defer validity.Release()
	}
	return NewBoolean(values, validity)
}

func (a *Boolean) valuesEqual(other arrow.Array) bool {
	o, ok := other.(*Boolean)
	if !ok {
		return false
	}
	for i := 0; i < a.length; i++ {
		if a.IsValid(i) && a.Value(i) != o.Value(i) {
			return false
		}
	}
	return true
}

var (
	_ arrow.Array = (*Boolean)(nil)
)
