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

// Package buffer provides typed views over ref-counted memory.
//
// A Buffer is immutable and may be shared between goroutines. A Mutable is
// owned by a single writer until Finish hands its memory to a new Buffer.
package buffer

import (
	"sync/atomic"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// Buffer is an immutable, contiguous run of T values. It is a view
// (offset, length) over a shared *memory.Buffer; slicing a Buffer shares
// the memory and never copies it.
type Buffer[T arrow.NativeType] struct {
	refCount int64
	mem      *memory.Buffer
	offset   int
	values   []T
}

// New returns a view of length values of buf starting at the element
// offset. The returned Buffer holds its own reference to buf.
func New[T arrow.NativeType](buf *memory.Buffer, offset, length int) *Buffer[T] {
	all := arrow.CastFromBytesTo[T](buf.Bytes())
	if offset < 0 || length < 0 || offset+length > len(all) {
		panic("arrow/buffer: view out of range of the underlying memory")
	}
	buf.Retain()
	return &Buffer[T]{
		refCount: 1,
		mem:      buf,
		offset:   offset,
		values:   all[offset : offset+length : offset+length],
	}
}

// FromSlice wraps v without copying. The memory is not owned by any
// allocator and v must not be modified afterwards.
func FromSlice[T arrow.NativeType](v []T) *Buffer[T] {
	return &Buffer[T]{
		refCount: 1,
		mem:      memory.NewBufferBytes(arrow.CastToBytes(v)),
		values:   v[:len(v):len(v)],
	}
}

// Retain increases the reference count by 1.
func (b *Buffer[T]) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Release decreases the reference count by 1. When the count reaches zero
// the view drops its reference to the underlying memory.
func (b *Buffer[T]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.mem.Release()
		b.mem, b.values = nil, nil
	}
}

// Len returns the number of values in the view.
func (b *Buffer[T]) Len() int { return len(b.values) }

// Offset returns the element offset of the view into the underlying memory.
func (b *Buffer[T]) Offset() int { return b.offset }

// Value returns the i-th value of the view.
func (b *Buffer[T]) Value(i int) T { return b.values[i] }

// Values returns the values of the view. The slice must not be modified.
func (b *Buffer[T]) Values() []T { return b.values }

// Bytes returns the bytes of the view.
func (b *Buffer[T]) Bytes() []byte { return arrow.CastToBytes(b.values) }

// Memory returns the underlying shared memory.
func (b *Buffer[T]) Memory() *memory.Buffer { return b.mem }

// Slice returns a view of the values [i, j). The new view shares memory
// with b and holds its own reference to it.
func (b *Buffer[T]) Slice(i, j int) *Buffer[T] {
	if i < 0 || j < i || j > len(b.values) {
		panic("arrow/buffer: slice bounds out of range")
	}
	b.mem.Retain()
	return &Buffer[T]{
		refCount: 1,
		mem:      b.mem,
		offset:   b.offset + i,
		values:   b.values[i:j:j],
	}
}
