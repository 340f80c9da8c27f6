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
	"fmt"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
)

// Primitive is an array of fixed-width values of type T.
type Primitive[T arrow.NativeType] struct {
	array
	values *buffer.Buffer[T]
}

// NewPrimitive returns an array of values with the logical type dt. A nil
// validity means every slot is valid. It panics if dt is not T's width or
// validity does not have one bit per value.
func NewPrimitive[T arrow.NativeType](dt arrow.DataType, values *buffer.Buffer[T], validity *bitmap.Bitmap) *Primitive[T] {
	checkPrimitiveType[T](dt)
	a := &Primitive[T]{values: values}
	a.array.init(dt, values.Len(), validity)
	values.Retain()
	return a
}

func checkPrimitiveType[T arrow.NativeType](dt arrow.DataType) {
	fw, ok := dt.(arrow.FixedWidthDataType)
	if !ok || dt.ID() == arrow.BOOL || dt.ID() == arrow.FIXED_SIZE_BINARY || fw.BitWidth() != 8*arrow.SizeOf[T]() {
		var z T
		panic(fmt.Errorf("%w: data type %s cannot hold values of type %T", arrow.ErrType, dt, z))
	}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (a *Primitive[T]) Release() {
	if a.array.release() {
		a.values.Release()
		a.values = nil
	}
}

// Value returns the value at index i. Null slots hold the zero value.
func (a *Primitive[T]) Value(i int) T { return a.values.Value(i) }

// Values returns every value, nulls included. It must not be modified.
func (a *Primitive[T]) Values() []T { return a.values.Values() }

// Buffer returns the value buffer.
func (a *Primitive[T]) Buffer() *buffer.Buffer[T] { return a.values }

func (a *Primitive[T]) String() string {
	return formatArray(a, func(i int) string { return fmt.Sprintf("%v", a.values.Value(i)) })
}

func (a *Primitive[T]) GetOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	v := a.values.Value(i)
	if d, ok := any(v).(decimal128.Num); ok {
		return d.String()
	}
	return v
}

func (a *Primitive[T]) MarshalJSON() ([]byte, error) { return marshalArray(a) }

func (a *Primitive[T]) slice(i, j int) arrow.Array {
	values := a.values.Slice(i, j)
	defer values.Release()
	validity := a.sliceValidity(i, j)
	if validity != nil {
		defer validity.Release()
	}
	return NewPrimitive(a.dtype, values, validity)
}

func (a *Primitive[T]) valuesEqual(other arrow.Array) bool {
	o, ok := other.(*Primitive[T])
	if !ok {
		return false
	}
	for i := 0; i < a.length; i++ {
		if a.IsNull(i) {
			continue
		}
		if a.values.Value(i) != o.values.Value(i) {
			return false
		}
	}
	return true
}

var (
	_ arrow.Array = (*Primitive[int64])(nil)
)
