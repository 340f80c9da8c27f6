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

package bitmap

import (
	"github.com/JohnCGriffin/overflow"
	"github.com/apache/arrow-kernels/go/arrow/bitutil"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// Mutable is a growable bitmap with a single owner.
type Mutable struct {
	mem    memory.Allocator
	buf    *memory.Buffer
	length int
}

// NewMutable returns an empty Mutable that allocates from mem.
func NewMutable(mem memory.Allocator) *Mutable {
	return &Mutable{mem: mem}
}

// NewMutableWithCapacity returns an empty Mutable with room for n bits.
func NewMutableWithCapacity(mem memory.Allocator, n int) *Mutable {
	m := NewMutable(mem)
	m.Reserve(n)
	return m
}

// Len returns the number of bits appended so far.
func (m *Mutable) Len() int { return m.length }

// Cap returns the number of bits the Mutable can hold before growing.
func (m *Mutable) Cap() int {
	if m.buf == nil {
		return 0
	}
	return m.buf.Len() * 8
}

// Reserve ensures there is space for at least n more bits.
func (m *Mutable) Reserve(n int) {
	want, ok := overflow.Add(m.length, n)
	if !ok || n < 0 {
		panic("arrow/bitmap: invalid reserve")
	}
	if want <= m.Cap() {
		return
	}
	nbytes := int(bitutil.BytesForBits(int64(want)))
	if m.buf == nil {
		m.buf = memory.NewResizableBuffer(m.mem)
	} else if nbytes < 2*m.buf.Len() {
		nbytes = 2 * m.buf.Len()
	}
	m.buf.Resize(nbytes)
}

// Append adds bit v.
func (m *Mutable) Append(v bool) {
	if m.length == m.Cap() {
		m.Reserve(1)
	}
	bitutil.SetBitTo(m.buf.Bytes(), m.length, v)
	m.length++
}

// AppendN adds n copies of bit v.
func (m *Mutable) AppendN(v bool, n int) {
	m.Reserve(n)
	bitutil.SetBitsTo(m.buf.Bytes(), m.length, n, v)
	m.length += n
}

// Set sets bit i, which must already have been appended.
func (m *Mutable) Set(i int, v bool) {
	if uint(i) >= uint(m.length) {
		panic("arrow/bitmap: index out of range")
	}
	bitutil.SetBitTo(m.buf.Bytes(), i, v)
}

// Value returns bit i, which must already have been appended.
func (m *Mutable) Value(i int) bool {
	if uint(i) >= uint(m.length) {
		panic("arrow/bitmap: index out of range")
	}
	return bitutil.BitIsSet(m.buf.Bytes(), i)
}

// Finish moves the appended bits into an immutable Bitmap without copying.
// The Mutable is left empty and may be reused.
func (m *Mutable) Finish() *Bitmap {
	if m.buf == nil {
		m.buf = memory.NewResizableBuffer(m.mem)
	}
	m.buf.ResizeNoShrink(int(bitutil.BytesForBits(int64(m.length))))

	out := New(m.buf, 0, m.length)
	m.buf.Release()
	m.buf, m.length = nil, 0
	return out
}

// Release frees the memory held by the Mutable.
func (m *Mutable) Release() {
	if m.buf != nil {
		m.buf.Release()
	}
	m.buf, m.length = nil, 0
}

// FromTrustedLen builds a Bitmap of exactly n bits, obtaining bit i from
// fn(i). The memory is allocated once. On the first error the partially
// built memory is released and the error returned.
func FromTrustedLen(mem memory.Allocator, n int, fn func(i int) (bool, error)) (*Bitmap, error) {
	m := NewMutableWithCapacity(mem, n)
	var buf []byte
	if m.buf != nil {
		buf = m.buf.Bytes()
	}
	for i := 0; i < n; i++ {
		v, err := fn(i)
		if err != nil {
			m.Release()
			return nil, err
		}
		bitutil.SetBitTo(buf, i, v)
	}
	m.length = n
	return m.Finish(), nil
}
