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

package array_test

import (
	"testing"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/array"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedSizeBinaryBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFixedSizeBinaryBuilder(mem, 7)
	defer b.Release()

	b.Append([]byte("1234567"))
	b.AppendNull()
	b.Append([]byte("ABCDEFG"))
	b.AppendNull()

	assert.Equal(t, 4, b.Len(), "unexpected Len()")
	assert.Equal(t, 2, b.NullN(), "unexpected NullN()")

	assert.Equal(t, []byte("1234567"), b.Value(0))
	assert.Equal(t, make([]byte, 7), b.Value(1))
	assert.Equal(t, []byte("ABCDEFG"), b.ValueUnchecked(2))

	require.NoError(t, b.AppendValues([][]byte{[]byte("7654321"), nil, []byte("AZERTYU")}, []bool{true, false, true}))
	assert.Equal(t, 7, b.Len(), "unexpected Len()")
	assert.Equal(t, 3, b.NullN(), "unexpected NullN()")

	a := b.NewFixedSizeBinaryArray()
	defer a.Release()

	// check state of builder after NewFixedSizeBinaryArray
	assert.Zero(t, b.Len(), "NewFixedSizeBinaryArray did not reset state")
	assert.Zero(t, b.NullN(), "NewFixedSizeBinaryArray did not reset state")
	assert.Nil(t, b.Validity(), "NewFixedSizeBinaryArray did not reset state")

	assert.Equal(t, 7, a.ByteWidth())
	assert.Equal(t, 7, a.Len())
	assert.Equal(t, 3, a.NullN())
	assert.Len(t, a.ValueBytes(), 49)
	assert.Equal(t, `["1234567" (null) "ABCDEFG" (null) "7654321" (null) "AZERTYU"]`, a.String())
}

func TestFixedSizeBinaryRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFixedSizeBinaryBuilder(mem, 2)
	defer b.Release()

	require.NoError(t, b.TryAppend([]byte{1, 2}))
	b.AppendNull()

	a := b.NewFixedSizeBinaryArray()
	defer a.Release()
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []byte{1, 2}, a.Value(0))
	assert.True(t, a.IsNull(1))
	assert.True(t, a.IsValid(0))
	assert.Equal(t, []byte{1, 2, 0, 0}, a.ValueBytes())
}

func TestFixedSizeBinaryRejectsWrongWidth(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFixedSizeBinaryBuilder(mem, 3)
	defer b.Release()

	require.NoError(t, b.TryAppend([]byte("abc")))
	err := b.TryAppend([]byte("ab"))
	assert.ErrorIs(t, err, arrow.ErrInvalidArgument)
	assert.Equal(t, 1, b.Len())
	assert.Nil(t, b.Validity())

	assert.Panics(t, func() { b.Append([]byte("abcd")) })
	assert.Equal(t, 1, b.Len())

	// a bad element anywhere leaves the builder untouched
	err = b.AppendValues([][]byte{[]byte("xyz"), []byte("x")}, nil)
	assert.ErrorIs(t, err, arrow.ErrInvalidArgument)
	assert.Equal(t, 1, b.Len())

	err = b.AppendValues([][]byte{[]byte("xyz")}, []bool{true, false})
	assert.ErrorIs(t, err, arrow.ErrInvalidArgument)
	assert.Equal(t, 1, b.Len())
}

func TestFixedSizeBinaryLazyValidity(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFixedSizeBinaryBuilder(mem, 1)
	defer b.Release()

	for i := 0; i < 5; i++ {
		b.Append([]byte{byte(i)})
	}
	assert.Nil(t, b.Validity(), "no validity before the first null")

	b.AppendNull()
	v := b.Validity()
	require.NotNil(t, v)
	require.Equal(t, 6, v.Len())
	for i := 0; i < 5; i++ {
		assert.True(t, v.Value(i), "slot %d", i)
	}
	assert.False(t, v.Value(5), "the null just appended")

	b.Append([]byte{9})
	assert.Equal(t, 7, b.Validity().Len())
	assert.True(t, b.Validity().Value(6))

	a := b.NewFixedSizeBinaryArray()
	defer a.Release()
	assert.Equal(t, 1, a.NullN())
	assert.True(t, a.IsNull(5))
}

func TestFixedSizeBinaryFirstElementNull(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFixedSizeBinaryBuilder(mem, 4)
	defer b.Release()
	b.AppendNull()
	require.NotNil(t, b.Validity())
	assert.Equal(t, 1, b.Validity().Len())
	assert.False(t, b.Validity().Value(0))
}

func TestFixedSizeBinaryZeroWidth(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFixedSizeBinaryBuilderWithCapacity(mem, 0, 16)
	defer b.Release()

	require.NoError(t, b.TryAppend(nil))
	require.NoError(t, b.TryAppend([]byte{}))
	b.AppendNull()
	assert.ErrorIs(t, b.TryAppend([]byte{1}), arrow.ErrInvalidArgument)
	assert.Equal(t, 3, b.Len())
	assert.Empty(t, b.Value(0))
	assert.Empty(t, b.ValueUnchecked(1))

	a := b.NewFixedSizeBinaryArray()
	defer a.Release()
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.Empty(t, a.Value(2))
}

func TestFixedSizeBinaryCapacityOverflow(t *testing.T) {
	assert.Panics(t, func() {
		array.NewFixedSizeBinaryBuilderWithCapacity(memory.DefaultAllocator, 1<<40, 1<<40)
	})
}

func TestFixedSizeBinaryFromData(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	values := buffer.NewMutable[byte](mem)
	values.AppendValues([]byte("aabbcc"))
	validity := bitmap.NewMutable(mem)
	validity.Append(true)
	validity.Append(false)
	validity.Append(true)

	b := array.NewFixedSizeBinaryBuilderFromData(mem, 2, values, validity)
	defer b.Release()
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 1, b.NullN())
	assert.Equal(t, []byte("cc"), b.Value(2))

	b.Append([]byte("dd"))
	a := b.NewFixedSizeBinaryArray()
	defer a.Release()
	assert.Equal(t, `["aa" (null) "cc" "dd"]`, a.String())

	bad := buffer.NewMutable[byte](mem)
	defer bad.Release()
	bad.AppendValues([]byte("abc"))
	assert.Panics(t, func() { array.NewFixedSizeBinaryBuilderFromData(mem, 2, bad, nil) })
}

func TestFixedSizeBinaryBuilderEmpty(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewFixedSizeBinaryBuilder(mem, 7)
	defer ab.Release()

	want := [][]byte{
		[]byte("1234567"),
		[]byte("AZERTYU"),
		[]byte("7654321"),
	}

	fixedSizeValues := func(a *array.FixedSizeBinary) [][]byte {
		vs := make([][]byte, a.Len())
		for i := range vs {
			vs[i] = a.Value(i)
		}
		return vs
	}

	require.NoError(t, ab.AppendValues(nil, nil))
	a := ab.NewFixedSizeBinaryArray()
	assert.Zero(t, a.Len())
	a.Release()

	require.NoError(t, ab.AppendValues([][]byte{}, nil))
	require.NoError(t, ab.AppendValues(want, nil))
	a = ab.NewFixedSizeBinaryArray()
	assert.Equal(t, want, fixedSizeValues(a))
	assert.Nil(t, a.Validity())
	a.Release()
}
