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

// Package bitmap implements LSB-first packed bit sequences used as
// validity masks and boolean values.
package bitmap

import (
	"sync/atomic"

	"github.com/apache/arrow-kernels/go/arrow/bitutil"
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// Bitmap is an immutable view of length bits starting at bit offset of a
// shared *memory.Buffer. The number of unset bits is computed once.
type Bitmap struct {
	refCount  int64
	buf       *memory.Buffer
	offset    int
	length    int
	unsetBits int
}

// New returns a Bitmap over length bits of buf starting at bit offset. The
// Bitmap holds its own reference to buf.
func New(buf *memory.Buffer, offset, length int) *Bitmap {
	if offset < 0 || length < 0 || int64(offset+length) > int64(buf.Len())*8 {
		panic("arrow/bitmap: view out of range of the underlying memory")
	}
	buf.Retain()
	return &Bitmap{
		refCount:  1,
		buf:       buf,
		offset:    offset,
		length:    length,
		unsetBits: length - bitutil.CountSetBits(buf.Bytes(), offset, length),
	}
}

// FromBools packs v into a new Bitmap allocated from mem.
func FromBools(mem memory.Allocator, v []bool) *Bitmap {
	m := NewMutableWithCapacity(mem, len(v))
	for _, b := range v {
		m.Append(b)
	}
	return m.Finish()
}

// Retain increases the reference count by 1.
func (b *Bitmap) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Release decreases the reference count by 1. When the count reaches zero
// the view drops its reference to the underlying memory.
func (b *Bitmap) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.buf.Release()
		b.buf = nil
	}
}

// Len returns the number of bits in the view.
func (b *Bitmap) Len() int { return b.length }

// Offset returns the bit offset of the view into the underlying memory.
func (b *Bitmap) Offset() int { return b.offset }

// UnsetBits returns the number of bits that are not set.
func (b *Bitmap) UnsetBits() int { return b.unsetBits }

// Value returns bit i. It panics if i is out of range.
func (b *Bitmap) Value(i int) bool {
	if uint(i) >= uint(b.length) {
		panic("arrow/bitmap: index out of range")
	}
	return bitutil.BitIsSet(b.buf.Bytes(), b.offset+i)
}

// Lookup returns bit i and whether i is in range.
func (b *Bitmap) Lookup(i int) (v, ok bool) {
	if uint(i) >= uint(b.length) {
		return false, false
	}
	return bitutil.BitIsSet(b.buf.Bytes(), b.offset+i), true
}

// Bytes returns the underlying bytes. Bit i of the view is bit
// Offset()+i of the returned slice.
func (b *Bitmap) Bytes() []byte { return b.buf.Bytes() }

// Memory returns the underlying shared memory.
func (b *Bitmap) Memory() *memory.Buffer { return b.buf }

// Slice returns a view of length bits starting at bit offset of b. The
// new view shares memory with b.
func (b *Bitmap) Slice(offset, length int) *Bitmap {
	if offset < 0 || length < 0 || offset+length > b.length {
		panic("arrow/bitmap: slice bounds out of range")
	}
	return New(b.buf, b.offset+offset, length)
}

// Bools unpacks the view into a []bool.
func (b *Bitmap) Bools() []bool {
	out := make([]bool, b.length)
	rdr := bitutil.NewBitmapReader(b.buf.Bytes(), b.offset, b.length)
	for i := range out {
		out[i] = rdr.Set()
		rdr.Next()
	}
	return out
}

// And returns the bitwise AND of a and b. A nil Bitmap counts as all set,
// so And returns nil only when both inputs are nil. It panics when the
// lengths differ.
func And(mem memory.Allocator, a, b *Bitmap) *Bitmap {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		b.Retain()
		return b
	case b == nil:
		a.Retain()
		return a
	}
	if a.length != b.length {
		panic("arrow/bitmap: And of bitmaps with different lengths")
	}

	out := memory.NewResizableBuffer(mem)
	out.Resize(int(bitutil.BytesForBits(int64(a.length))))
	dst := out.Bytes()

	if a.offset%8 == 0 && b.offset%8 == 0 {
		left, right := a.Bytes()[a.offset/8:], b.Bytes()[b.offset/8:]
		for i := range dst {
			dst[i] = left[i] & right[i]
		}
	} else {
		ra := bitutil.NewBitmapReader(a.Bytes(), a.offset, a.length)
		rb := bitutil.NewBitmapReader(b.Bytes(), b.offset, b.length)
		for i := 0; i < a.length; i++ {
			bitutil.SetBitTo(dst, i, ra.Set() && rb.Set())
			ra.Next()
			rb.Next()
		}
	}

	res := New(out, 0, a.length)
	out.Release()
	return res
}
