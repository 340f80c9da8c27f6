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

package buffer

import (
	"fmt"

	"github.com/JohnCGriffin/overflow"
	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitutil"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

const minCapacity = 32

// Mutable is a growable buffer of T values with a single owner.
type Mutable[T arrow.NativeType] struct {
	mem    memory.Allocator
	buf    *memory.Buffer
	data   []T
	length int
}

// NewMutable returns an empty Mutable that allocates from mem.
func NewMutable[T arrow.NativeType](mem memory.Allocator) *Mutable[T] {
	return &Mutable[T]{mem: mem}
}

// NewMutableWithCapacity returns an empty Mutable with room for n values.
// It panics if n values cannot be addressed in memory.
func NewMutableWithCapacity[T arrow.NativeType](mem memory.Allocator, n int) *Mutable[T] {
	m := NewMutable[T](mem)
	m.Reserve(n)
	return m
}

// Len returns the number of values appended so far.
func (m *Mutable[T]) Len() int { return m.length }

// Cap returns the number of values the Mutable can hold before growing.
func (m *Mutable[T]) Cap() int { return len(m.data) }

// Values returns the appended values. The slice is invalidated by the next
// call that grows the Mutable.
func (m *Mutable[T]) Values() []T { return m.data[:m.length] }

// Reserve ensures there is space for at least n more values.
func (m *Mutable[T]) Reserve(n int) {
	if n < 0 {
		panic(fmt.Errorf("%w: negative reserve %d", arrow.ErrInvalidArgument, n))
	}
	want, ok := overflow.Add(m.length, n)
	if !ok {
		panic(fmt.Errorf("%w: capacity overflow", arrow.ErrInvalidArgument))
	}
	if want <= len(m.data) {
		return
	}
	if want < minCapacity {
		want = minCapacity
	} else if want > len(m.data)*2 {
		want = bitutil.NextPowerOf2(want - 1)
	} else {
		want = len(m.data) * 2
	}
	m.resize(want)
}

func (m *Mutable[T]) resize(elements int) {
	nbytes, ok := overflow.Mul(elements, arrow.SizeOf[T]())
	if !ok {
		panic(fmt.Errorf("%w: capacity overflow", arrow.ErrInvalidArgument))
	}
	if m.buf == nil {
		m.buf = memory.NewResizableBuffer(m.mem)
	}
	m.buf.Resize(nbytes)
	m.data = arrow.CastFromBytesTo[T](m.buf.Bytes())
}

// Append adds v to the end of the buffer.
func (m *Mutable[T]) Append(v T) {
	if m.length == len(m.data) {
		m.Reserve(1)
	}
	m.data[m.length] = v
	m.length++
}

// AppendN adds n copies of v.
func (m *Mutable[T]) AppendN(v T, n int) {
	m.Reserve(n)
	fill := m.data[m.length : m.length+n]
	for i := range fill {
		fill[i] = v
	}
	m.length += n
}

// AppendValues adds every element of v.
func (m *Mutable[T]) AppendValues(v []T) {
	m.Reserve(len(v))
	copy(m.data[m.length:], v)
	m.length += len(v)
}

// Finish moves the appended values into an immutable Buffer without
// copying. The Mutable is left empty and may be reused.
func (m *Mutable[T]) Finish() *Buffer[T] {
	if m.buf == nil {
		m.buf = memory.NewResizableBuffer(m.mem)
	}
	m.buf.ResizeNoShrink(m.length * arrow.SizeOf[T]())

	out := New[T](m.buf, 0, m.length)
	m.buf.Release()
	m.buf, m.data, m.length = nil, nil, 0
	return out
}

// Release frees the memory held by the Mutable.
func (m *Mutable[T]) Release() {
	if m.buf != nil {
		m.buf.Release()
	}
	m.buf, m.data, m.length = nil, nil, 0
}

// FromTrustedLen builds a Buffer of exactly n values, obtaining the i-th
// value from fn(i). The memory is allocated once. On the first error the
// partially built memory is released and the error returned.
func FromTrustedLen[T arrow.NativeType](mem memory.Allocator, n int, fn func(i int) (T, error)) (*Buffer[T], error) {
	m := NewMutable[T](mem)
	m.resize(n)
	for i := 0; i < n; i++ {
		v, err := fn(i)
		if err != nil {
			m.Release()
			return nil, err
		}
		m.data[i] = v
	}
	m.length = n
	return m.Finish(), nil
}
