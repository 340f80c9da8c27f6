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

package buffer_test

import (
	"errors"
	"testing"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutableFinish(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	m := buffer.NewMutable[int32](mem)
	m.Append(1)
	m.AppendValues([]int32{2, 3})
	m.AppendN(7, 3)
	assert.Equal(t, 6, m.Len())
	assert.GreaterOrEqual(t, m.Cap(), 6)
	assert.Equal(t, []int32{1, 2, 3, 7, 7, 7}, m.Values())

	b := m.Finish()
	defer b.Release()
	assert.Zero(t, m.Len())
	assert.Equal(t, []int32{1, 2, 3, 7, 7, 7}, b.Values())
	assert.Equal(t, int32(3), b.Value(2))
	assert.Len(t, b.Bytes(), 24)

	// the mutable is reusable after Finish
	m.Append(9)
	assert.Equal(t, []int32{9}, m.Values())
	m.Release()
}

func TestMutableGrowth(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	m := buffer.NewMutableWithCapacity[uint64](mem, 10)
	defer m.Release()
	for i := 0; i < 1000; i++ {
		m.Append(uint64(i))
	}
	require.Equal(t, 1000, m.Len())
	for i, v := range m.Values() {
		assert.Equal(t, uint64(i), v)
	}
}

func TestSliceSharesMemory(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	m := buffer.NewMutable[int16](mem)
	for i := 0; i < 100; i++ {
		m.Append(int16(i))
	}
	b := m.Finish()
	allocated := mem.CurrentAlloc()

	s := b.Slice(10, 20)
	assert.Equal(t, allocated, mem.CurrentAlloc())
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 10, s.Offset())
	assert.Same(t, b.Memory(), s.Memory())

	ss := s.Slice(5, 10)
	assert.Equal(t, []int16{15, 16, 17, 18, 19}, ss.Values())
	assert.Equal(t, 15, ss.Offset())

	b.Release()
	s.Release()
	assert.Equal(t, allocated, mem.CurrentAlloc())
	assert.Equal(t, int16(19), ss.Value(4))
	ss.Release()
}

func TestFromTrustedLen(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b, err := buffer.FromTrustedLen(mem, 5, func(i int) (float64, error) {
		return float64(i) / 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, b.Values())
	b.Release()

	errStop := errors.New("stop")
	bi, err := buffer.FromTrustedLen(mem, 50, func(i int) (int8, error) {
		if i == 30 {
			return 0, errStop
		}
		return int8(i), nil
	})
	assert.ErrorIs(t, err, errStop)
	assert.Nil(t, bi)

	empty, err := buffer.FromTrustedLen(mem, 0, func(int) (uint8, error) { return 1, nil })
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
	empty.Release()
}

func TestFromSlice(t *testing.T) {
	v := []arrow.DayTimeInterval{{Days: 1, Milliseconds: 2}, {Days: 3}}
	b := buffer.FromSlice(v)
	assert.Equal(t, v, b.Values())
	assert.Len(t, b.Bytes(), 16)
	b.Release()
}

func TestViewOutOfRangePanics(t *testing.T) {
	b := buffer.FromSlice([]int32{1, 2, 3})
	defer b.Release()
	assert.Panics(t, func() { b.Slice(2, 4) })
	assert.Panics(t, func() { buffer.New[int64](b.Memory(), 1, 1) })
}
