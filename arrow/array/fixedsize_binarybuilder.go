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
	"unsafe"

	"github.com/JohnCGriffin/overflow"
	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/goccy/go-json"
)

// A FixedSizeBinaryBuilder is used to build a FixedSizeBinary array using the Append methods.
type FixedSizeBinaryBuilder struct {
	builder

	dtype  *arrow.FixedSizeBinaryType
	values *buffer.Mutable[byte]
}

// NewFixedSizeBinaryBuilder returns a builder of values that are exactly
// size bytes wide.
func NewFixedSizeBinaryBuilder(mem memory.Allocator, size int) *FixedSizeBinaryBuilder {
	if size < 0 {
		panic(fmt.Errorf("%w: negative byte width %d", arrow.ErrInvalidArgument, size))
	}
	return newFixedSizeBinaryBuilder(mem, &arrow.FixedSizeBinaryType{ByteWidth: size})
}

// NewFixedSizeBinaryBuilderWithCapacity returns a builder with room for n
// values of size bytes. It panics if n*size overflows.
func NewFixedSizeBinaryBuilderWithCapacity(mem memory.Allocator, size, n int) *FixedSizeBinaryBuilder {
	b := NewFixedSizeBinaryBuilder(mem, size)
	b.Reserve(n)
	return b
}

// NewFixedSizeBinaryBuilderFromData returns a builder that takes ownership
// of values and validity, which may be nil. It panics if values is not a
// whole number of size-byte elements, or if validity does not have one
// bit per element.
func NewFixedSizeBinaryBuilderFromData(mem memory.Allocator, size int, values *buffer.Mutable[byte], validity *bitmap.Mutable) *FixedSizeBinaryBuilder {
	b := NewFixedSizeBinaryBuilder(mem, size)
	if values == nil {
		values = buffer.NewMutable[byte](mem)
	}
	switch {
	case size > 0 && values.Len()%size != 0:
		panic(fmt.Errorf("%w: %d bytes are not a multiple of the width %d", arrow.ErrInvalidArgument, values.Len(), size))
	case size == 0 && values.Len() != 0:
		panic(fmt.Errorf("%w: values given for a zero width", arrow.ErrInvalidArgument))
	}

	length := 0
	if size > 0 {
		length = values.Len() / size
	} else if validity != nil {
		length = validity.Len()
	}
	if validity != nil {
		if validity.Len() != length {
			panic(fmt.Errorf("%w: validity has %d bits for %d values", arrow.ErrInvalidArgument, validity.Len(), length))
		}
		for i := 0; i < length; i++ {
			if !validity.Value(i) {
				b.nulls++
			}
		}
	}

	b.values.Release()
	b.values = values
	b.validity = validity
	b.length = length
	return b
}

func newFixedSizeBinaryBuilder(mem memory.Allocator, dtype *arrow.FixedSizeBinaryType) *FixedSizeBinaryBuilder {
	return &FixedSizeBinaryBuilder{
		builder: builder{refCount: 1, mem: mem},
		dtype:   dtype,
		values:  buffer.NewMutable[byte](mem),
	}
}

func (b *FixedSizeBinaryBuilder) Type() arrow.DataType { return b.dtype }

// Size returns the width in bytes of every value.
func (b *FixedSizeBinaryBuilder) Size() int { return b.dtype.ByteWidth }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (b *FixedSizeBinaryBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.releaseValidity()
		b.values.Release()
	}
}

// TryAppend appends v as a valid value. It fails with
// arrow.ErrInvalidArgument, leaving the builder unchanged, when v is not
// exactly Size() bytes.
func (b *FixedSizeBinaryBuilder) TryAppend(v []byte) error {
	if len(v) != b.dtype.ByteWidth {
		return fmt.Errorf("%w: value of %d bytes appended to a builder of width %d",
			arrow.ErrInvalidArgument, len(v), b.dtype.ByteWidth)
	}

	b.values.AppendValues(v)
	b.length++
	b.appendValidity(true)
	return nil
}

// Append is like TryAppend but panics on a value of the wrong width.
func (b *FixedSizeBinaryBuilder) Append(v []byte) {
	if err := b.TryAppend(v); err != nil {
		panic(err)
	}
}

// AppendNull appends Size() zero bytes and marks the slot null.
func (b *FixedSizeBinaryBuilder) AppendNull() {
	b.values.AppendN(0, b.dtype.ByteWidth)
	b.length++
	b.appendValidity(false)
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid. Values in null slots are ignored.
// Nothing is appended if any valid value has the wrong width.
func (b *FixedSizeBinaryBuilder) AppendValues(v [][]byte, valid []bool) error {
	if len(v) != len(valid) && len(valid) != 0 {
		return fmt.Errorf("%w: %d values with %d validity flags", arrow.ErrInvalidArgument, len(v), len(valid))
	}
	for i, vv := range v {
		if (len(valid) == 0 || valid[i]) && len(vv) != b.dtype.ByteWidth {
			return fmt.Errorf("%w: value %d has %d bytes, width is %d",
				arrow.ErrInvalidArgument, i, len(vv), b.dtype.ByteWidth)
		}
	}

	b.Reserve(len(v))
	for i, vv := range v {
		if len(valid) == 0 || valid[i] {
			b.Append(vv)
			continue
		}
		b.AppendNull()
	}
	return nil
}

// Value returns the i-th value appended so far. It panics if i >= Len().
func (b *FixedSizeBinaryBuilder) Value(i int) []byte {
	if uint(i) >= uint(b.length) {
		panic("arrow/array: index out of range")
	}
	start := i * b.dtype.ByteWidth
	return b.values.Values()[start : start+b.dtype.ByteWidth]
}

// ValueUnchecked returns the i-th value without a range check. The
// caller must guarantee i < Len().
func (b *FixedSizeBinaryBuilder) ValueUnchecked(i int) []byte {
	width := b.dtype.ByteWidth
	if width == 0 {
		return []byte{}
	}
	base := unsafe.Pointer(unsafe.SliceData(b.values.Values()))
	return unsafe.Slice((*byte)(unsafe.Add(base, i*width)), width)
}

// Reserve ensures there is enough space for appending n elements.
func (b *FixedSizeBinaryBuilder) Reserve(n int) {
	nbytes, ok := overflow.Mul(n, b.dtype.ByteWidth)
	if !ok {
		panic(fmt.Errorf("%w: capacity of %d values of width %d overflows", arrow.ErrInvalidArgument, n, b.dtype.ByteWidth))
	}
	b.values.Reserve(nbytes)
	b.reserveValidity(n)
}

// NewArray creates a FixedSizeBinary array from the memory buffers used by the
// builder and resets the FixedSizeBinaryBuilder so it can be used to build a new array.
func (b *FixedSizeBinaryBuilder) NewArray() arrow.Array {
	return b.NewFixedSizeBinaryArray()
}

// NewFixedSizeBinaryArray creates a FixedSizeBinary array from the memory buffers used by the builder and resets the FixedSizeBinaryBuilder
// so it can be used to build a new array.
func (b *FixedSizeBinaryBuilder) NewFixedSizeBinaryArray() *FixedSizeBinary {
	length := b.length
	values := b.values.Finish()
	defer values.Release()
	validity := b.finishValidity()
	if validity != nil {
		defer validity.Release()
	}
	return NewFixedSizeBinary(b.dtype, length, values, validity)
}

func (b *FixedSizeBinaryBuilder) unmarshalOne(raw []byte) error {
	var v []byte
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return b.TryAppend(v)
}

var (
	_ Builder = (*FixedSizeBinaryBuilder)(nil)
)
