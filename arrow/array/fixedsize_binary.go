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
	"bytes"
	"fmt"
	"strconv"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
)

// A FixedSizeBinary is an array of byte strings that all have the same
// width. The values are stored back to back in a single buffer.
type FixedSizeBinary struct {
	array
	width  int
	values *buffer.Buffer[byte]
}

// NewFixedSizeBinary returns an array of length values of dt.ByteWidth
// bytes each. It panics if values does not hold exactly
// length*dt.ByteWidth bytes.
func NewFixedSizeBinary(dt *arrow.FixedSizeBinaryType, length int, values *buffer.Buffer[byte], validity *bitmap.Bitmap) *FixedSizeBinary {
	if dt.ByteWidth < 0 || values.Len() != length*dt.ByteWidth {
		panic(fmt.Errorf("%w: %d bytes do not form %d values of width %d",
			arrow.ErrInvalidArgument, values.Len(), length, dt.ByteWidth))
	}
	a := &FixedSizeBinary{width: dt.ByteWidth, values: values}
	a.array.init(dt, length, validity)
	values.Retain()
	return a
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (a *FixedSizeBinary) Release() {
	if a.array.release() {
		a.values.Release()
		a.values = nil
	}
}

// ByteWidth returns the width in bytes of every value.
func (a *FixedSizeBinary) ByteWidth() int { return a.width }

// Value returns the fixed-size slice at index i. This value should not be mutated.
func (a *FixedSizeBinary) Value(i int) []byte {
	if uint(i) >= uint(a.length) {
		panic("arrow/array: index out of range")
	}
	start := i * a.width
	return a.values.Values()[start : start+a.width : start+a.width]
}

// ValueBytes returns the bytes of every value, nulls included.
func (a *FixedSizeBinary) ValueBytes() []byte { return a.values.Values() }

// Buffer returns the value buffer.
func (a *FixedSizeBinary) Buffer() *buffer.Buffer[byte] { return a.values }

func (a *FixedSizeBinary) String() string {
	return formatArray(a, func(i int) string { return strconv.Quote(string(a.Value(i))) })
}

func (a *FixedSizeBinary) GetOneForMarshal(i int) interface{} {
	if a.IsValid(i) {
		return a.Value(i)
	}
	return nil
}

func (a *FixedSizeBinary) MarshalJSON() ([]byte, error) { return marshalArray(a) }

func (a *FixedSizeBinary) slice(i, j int) arrow.Array {
	values := a.values.Slice(i*a.width, j*a.width)
	defer values.Release()
	validity := a.sliceValidity(i, j)
	if validity != nil {
		defer validity.Release()
	}
	return NewFixedSizeBinary(a.dtype.(*arrow.FixedSizeBinaryType), j-i, values, validity)
}

func (a *FixedSizeBinary) valuesEqual(other arrow.Array) bool {
	o, ok := other.(*FixedSizeBinary)
	if !ok {
		return false
	}
	for i := 0; i < a.length; i++ {
		if a.IsValid(i) && !bytes.Equal(a.Value(i), o.Value(i)) {
			return false
		}
	}
	return true
}

var (
	_ arrow.Array = (*FixedSizeBinary)(nil)
)
