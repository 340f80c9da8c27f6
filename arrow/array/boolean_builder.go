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
	"sync/atomic"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/goccy/go-json"
)

type BooleanBuilder struct {
	builder

	values *bitmap.Mutable
}

func NewBooleanBuilder(mem memory.Allocator) *BooleanBuilder {
	return &BooleanBuilder{
		builder: builder{refCount: 1, mem: mem},
		values:  bitmap.NewMutable(mem),
	}
}

func (b *BooleanBuilder) Type() arrow.DataType { return arrow.FixedWidthTypes.Boolean }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *BooleanBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.releaseValidity()
		b.values.Release()
	}
}

func (b *BooleanBuilder) Append(v bool) {
	b.values.Append(v)
	b.length++
	b.appendValidity(true)
}

// AppendNull appends a null slot holding false.
func (b *BooleanBuilder) AppendNull() {
	b.values.Append(false)
	b.length++
	b.appendValidity(false)
}

func (b *BooleanBuilder) AppendValues(v []bool, valid []bool) {
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

func (b *BooleanBuilder) Value(i int) bool { return b.values.Value(i) }

func (b *BooleanBuilder) Reserve(n int) {
	b.values.Reserve(n)
	b.reserveValidity(n)
}

// NewArray creates a Boolean array from the memory buffers used by the builder
// and resets the builder so it can be used to build a new array.
func (b *BooleanBuilder) NewArray() arrow.Array { return b.NewBooleanArray() }

// NewBooleanArray creates a Boolean array from the memory buffers used by the
// builder and resets the builder so it can be used to build a new array.
func (b *BooleanBuilder) NewBooleanArray() *Boolean {
	values := b.values.Finish()
	defer values.Release()
	validity := b.finishValidity()
	if validity != nil {
		defer validity.Release()
	}
	return NewBoolean(values, validity)
}

func (b *BooleanBuilder) unmarshalOne(raw []byte) error {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	b.Append(v)
	return nil
}

var (
	_ Builder = (*BooleanBuilder)(nil)
)
