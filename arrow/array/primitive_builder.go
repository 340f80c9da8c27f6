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
	"math/big"
	"sync/atomic"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/goccy/go-json"
)

// A PrimitiveBuilder is used to build a Primitive array using the Append methods.
type PrimitiveBuilder[T arrow.NativeType] struct {
	builder

	dtype  arrow.DataType
	values *buffer.Mutable[T]
}

func NewPrimitiveBuilder[T arrow.NativeType](mem memory.Allocator, dt arrow.DataType) *PrimitiveBuilder[T] {
	checkPrimitiveType[T](dt)
	return &PrimitiveBuilder[T]{
		builder: builder{refCount: 1, mem: mem},
		dtype:   dt,
		values:  buffer.NewMutable[T](mem),
	}
}

func (b *PrimitiveBuilder[T]) Type() arrow.DataType { return b.dtype }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *PrimitiveBuilder[T]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.releaseValidity()
		b.values.Release()
	}
}

func (b *PrimitiveBuilder[T]) Append(v T) {
	b.values.Append(v)
	b.length++
	b.appendValidity(true)
}

// AppendNull appends the zero value of T and marks it null.
func (b *PrimitiveBuilder[T]) AppendNull() {
	var z T
	b.values.Append(z)
	b.length++
	b.appendValidity(false)
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *PrimitiveBuilder[T]) AppendValues(v []T, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	b.Reserve(len(v))
	for i, vv := range v {
		if len(valid) == 0 || valid[i] {
			b.Append(vv)
			continue
		}
		b.AppendNull()
	}
}

// Value returns the i-th value appended so far.
func (b *PrimitiveBuilder[T]) Value(i int) T { return b.values.Values()[i] }

// Reserve ensures there is enough space for appending n elements.
func (b *PrimitiveBuilder[T]) Reserve(n int) {
	b.values.Reserve(n)
	b.reserveValidity(n)
}

// NewArray creates a Primitive array from the memory buffers used by the builder
// and resets the builder so it can be used to build a new array.
func (b *PrimitiveBuilder[T]) NewArray() arrow.Array { return b.NewPrimitiveArray() }

// NewPrimitiveArray creates a Primitive array from the memory buffers used by the
// builder and resets the builder so it can be used to build a new array.
func (b *PrimitiveBuilder[T]) NewPrimitiveArray() *Primitive[T] {
	values := b.values.Finish()
	defer values.Release()
	validity := b.finishValidity()
	if validity != nil {
		defer validity.Release()
	}
	return NewPrimitive(b.dtype, values, validity)
}

func (b *PrimitiveBuilder[T]) unmarshalOne(raw []byte) error {
	var v T
	if d, ok := any(&v).(*decimal128.Num); ok {
		n, err := unmarshalDecimal(raw)
		if err != nil {
			return err
		}
		*d = n
	} else if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	b.Append(v)
	return nil
}

// unmarshalDecimal accepts a decimal integer either as a JSON number or as
// a JSON string.
func unmarshalDecimal(raw []byte) (decimal128.Num, error) {
	var s json.Number
	if err := json.Unmarshal(raw, &s); err != nil {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal128.Num{}, err
		}
		s = json.Number(str)
	}
	n, ok := new(big.Int).SetString(string(s), 10)
	if !ok {
		return decimal128.Num{}, fmt.Errorf("%w: %q is not a decimal integer", arrow.ErrInvalidArgument, s)
	}
	if !decimal128.FitsInNum(n) {
		return decimal128.Num{}, fmt.Errorf("%w: %s does not fit in 128 bits", arrow.ErrInvalidArgument, s)
	}
	return decimal128.FromBigInt(n), nil
}

var (
	_ Builder = (*PrimitiveBuilder[int64])(nil)
)
