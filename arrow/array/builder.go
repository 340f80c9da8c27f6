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
	"sync/atomic"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// Builder provides an interface to build arrow arrays.
type Builder interface {
	// Retain increases the reference count by 1.
	// Retain may be called simultaneously from multiple goroutines.
	Retain()

	// Release decreases the reference count by 1.
	Release()

	// Len returns the number of elements in the array builder.
	Len() int

	// NullN returns the number of null values in the array builder.
	NullN() int

	// Type returns the data type of the array being built.
	Type() arrow.DataType

	// Validity returns the validity mask being built, or nil when no null
	// has been appended yet.
	Validity() *bitmap.Mutable

	// AppendNull adds a new null value to the array being built.
	AppendNull()

	// Reserve ensures there is enough space for appending n elements.
	Reserve(n int)

	// NewArray creates a new array from the memory buffers used
	// by the builder and resets the Builder so it can be used to build
	// a new array.
	NewArray() arrow.Array

	unmarshalOne(raw []byte) error
}

// builder provides common functionality for managing the validity bitmap
// (nulls) when building arrays. The validity is only allocated once the
// first null is appended.
type builder struct {
	refCount int64
	mem      memory.Allocator
	validity *bitmap.Mutable
	length   int
	nulls    int
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (b *builder) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Len returns the number of elements in the array builder.
func (b *builder) Len() int { return b.length }

// NullN returns the number of null values in the array builder.
func (b *builder) NullN() int { return b.nulls }

// Validity returns the validity mask being built, or nil while every
// appended element is valid.
func (b *builder) Validity() *bitmap.Mutable { return b.validity }

// appendValidity records the validity of the element that was just
// appended, after the builder length already accounts for it.
func (b *builder) appendValidity(valid bool) {
	switch {
	case valid:
		if b.validity != nil {
			b.validity.Append(true)
		}
	case b.validity == nil:
		b.nulls++
		b.materializeValidity(b.length)
	default:
		b.nulls++
		b.validity.Append(false)
	}
}

// materializeValidity creates the validity for the first n elements with
// every element valid except the last one.
func (b *builder) materializeValidity(n int) {
	b.validity = bitmap.NewMutableWithCapacity(b.mem, n)
	b.validity.AppendN(true, n)
	b.validity.Set(n-1, false)
}

func (b *builder) reserveValidity(n int) {
	if b.validity != nil {
		b.validity.Reserve(n)
	}
}

// finishValidity hands the validity over to the caller and resets the
// builder state.
func (b *builder) finishValidity() *bitmap.Bitmap {
	var out *bitmap.Bitmap
	if b.validity != nil {
		out = b.validity.Finish()
		b.validity = nil
	}
	b.length, b.nulls = 0, 0
	return out
}

func (b *builder) releaseValidity() {
	if b.validity != nil {
		b.validity.Release()
		b.validity = nil
	}
}

// NewBuilder returns a builder for the data type dt. It panics when no
// builder exists for dt.
func NewBuilder(mem memory.Allocator, dt arrow.DataType) Builder {
	b, err := newBuilder(mem, dt)
	if err != nil {
		panic(err)
	}
	return b
}

func newBuilder(mem memory.Allocator, dt arrow.DataType) (Builder, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return NewBooleanBuilder(mem), nil
	case arrow.INT8:
		return NewPrimitiveBuilder[int8](mem, dt), nil
	case arrow.INT16:
		return NewPrimitiveBuilder[int16](mem, dt), nil
	case arrow.INT32:
		return NewPrimitiveBuilder[int32](mem, dt), nil
	case arrow.INT64:
		return NewPrimitiveBuilder[int64](mem, dt), nil
	case arrow.UINT8:
		return NewPrimitiveBuilder[uint8](mem, dt), nil
	case arrow.UINT16:
		return NewPrimitiveBuilder[uint16](mem, dt), nil
	case arrow.UINT32:
		return NewPrimitiveBuilder[uint32](mem, dt), nil
	case arrow.UINT64:
		return NewPrimitiveBuilder[uint64](mem, dt), nil
	case arrow.FLOAT32:
		return NewPrimitiveBuilder[float32](mem, dt), nil
	case arrow.FLOAT64:
		return NewPrimitiveBuilder[float64](mem, dt), nil
	case arrow.DATE32:
		return NewPrimitiveBuilder[arrow.Date32](mem, dt), nil
	case arrow.DATE64:
		return NewPrimitiveBuilder[arrow.Date64](mem, dt), nil
	case arrow.TIMESTAMP:
		return NewPrimitiveBuilder[arrow.Timestamp](mem, dt), nil
	case arrow.TIME32:
		return NewPrimitiveBuilder[arrow.Time32](mem, dt), nil
	case arrow.TIME64:
		return NewPrimitiveBuilder[arrow.Time64](mem, dt), nil
	case arrow.DURATION:
		return NewPrimitiveBuilder[arrow.Duration](mem, dt), nil
	case arrow.INTERVAL_MONTHS:
		return NewPrimitiveBuilder[arrow.MonthInterval](mem, dt), nil
	case arrow.INTERVAL_DAY_TIME:
		return NewPrimitiveBuilder[arrow.DayTimeInterval](mem, dt), nil
	case arrow.INTERVAL_MONTH_DAY_NANO:
		return NewPrimitiveBuilder[arrow.MonthDayNanoInterval](mem, dt), nil
	case arrow.DECIMAL128:
		return NewPrimitiveBuilder[decimal128.Num](mem, dt), nil
	case arrow.FIXED_SIZE_BINARY:
		return newFixedSizeBinaryBuilder(mem, dt.(*arrow.FixedSizeBinaryType)), nil
	}
	return nil, fmt.Errorf("arrow/array: %w: no builder for type %s", arrow.ErrNotImplemented, dt)
}
