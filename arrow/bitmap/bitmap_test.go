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

package bitmap_test

import (
	"errors"
	"testing"

	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutableAppendAndFinish(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	m := bitmap.NewMutable(mem)
	m.Append(true)
	m.Append(false)
	m.AppendN(true, 20)
	m.Set(3, false)
	assert.Equal(t, 22, m.Len())
	assert.False(t, m.Value(1))
	assert.True(t, m.Value(2))

	bm := m.Finish()
	defer bm.Release()
	assert.Zero(t, m.Len())
	assert.Equal(t, 22, bm.Len())
	assert.Equal(t, 2, bm.UnsetBits())
	assert.False(t, bm.Value(3))

	v, ok := bm.Lookup(21)
	assert.True(t, v)
	assert.True(t, ok)
	_, ok = bm.Lookup(22)
	assert.False(t, ok)
	assert.Panics(t, func() { bm.Value(22) })
}

func TestSliceCountsUnsetBits(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bools := []bool{true, false, true, true, false, false, true, true, true, false, true}
	bm := bitmap.FromBools(mem, bools)
	allocated := mem.CurrentAlloc()

	s := bm.Slice(3, 6)
	bm.Release()
	assert.Equal(t, allocated, mem.CurrentAlloc())
	assert.Equal(t, bools[3:9], s.Bools())
	assert.Equal(t, 2, s.UnsetBits())
	assert.Equal(t, 3, s.Offset())
	s.Release()
}

func TestAnd(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a := bitmap.FromBools(mem, []bool{true, true, false, false, true, true, true, true, false, true})
	b := bitmap.FromBools(mem, []bool{true, false, true, false, true, true, false, true, true, true})
	defer a.Release()
	defer b.Release()

	got := bitmap.And(mem, a, b)
	assert.Equal(t, []bool{true, false, false, false, true, true, false, true, false, true}, got.Bools())
	assert.Equal(t, 5, got.UnsetBits())
	got.Release()

	// unaligned inputs take the bit-at-a-time path
	sa, sb := a.Slice(1, 8), b.Slice(2, 8)
	got = bitmap.And(mem, sa, sb)
	exp := make([]bool, 8)
	for i := range exp {
		exp[i] = sa.Value(i) && sb.Value(i)
	}
	assert.Equal(t, exp, got.Bools())
	got.Release()
	sa.Release()
	sb.Release()

	same := bitmap.And(mem, nil, a)
	assert.Same(t, a, same)
	same.Release()
	assert.Nil(t, bitmap.And(mem, nil, nil))
	assert.Panics(t, func() { bitmap.And(mem, a, bitmap.FromBools(memory.DefaultAllocator, []bool{true})) })
}

func TestFromTrustedLen(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bm, err := bitmap.FromTrustedLen(mem, 100, func(i int) (bool, error) { return i%3 == 0, nil })
	require.NoError(t, err)
	assert.Equal(t, 100, bm.Len())
	assert.Equal(t, 66, bm.UnsetBits())
	bm.Release()

	errStop := errors.New("stop")
	bm, err = bitmap.FromTrustedLen(mem, 100, func(i int) (bool, error) {
		if i == 64 {
			return false, errStop
		}
		return true, nil
	})
	assert.ErrorIs(t, err, errStop)
	assert.Nil(t, bm)

	bm, err = bitmap.FromTrustedLen(mem, 0, func(int) (bool, error) { return true, nil })
	require.NoError(t, err)
	assert.Zero(t, bm.Len())
	bm.Release()
}
