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
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/apache/arrow-kernels/go/arrow/internal/testing/tools"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewPrimitiveBuilder[int32](mem, arrow.PrimitiveTypes.Int32)
	defer b.Release()

	b.Append(1)
	b.AppendNull()
	b.AppendValues([]int32{3, 4, 5}, tools.Bools(1, 0, 1))
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 2, b.NullN())
	assert.Equal(t, int32(4), b.Value(3))

	a := b.NewPrimitiveArray()
	defer a.Release()
	assert.Zero(t, b.Len())
	assert.Equal(t, []int32{1, 0, 3, 4, 5}, a.Values())
	assert.Equal(t, "[1 (null) 3 (null) 5]", a.String())
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int32, a.DataType()))

	b.Append(8)
	a2 := b.NewArray()
	defer a2.Release()
	assert.Nil(t, a2.Validity())
	assert.Equal(t, "[8]", a2.String())
}

func TestNewPrimitiveChecksInvariants(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	values := buffer.FromSlice([]int64{1, 2, 3})
	defer values.Release()
	validity := bitmap.FromBools(mem, tools.Bools(1, 1))
	defer validity.Release()

	assert.Panics(t, func() { array.NewPrimitive(arrow.PrimitiveTypes.Int64, values, validity) })
	assert.Panics(t, func() { array.NewPrimitive(arrow.PrimitiveTypes.Int32, values, nil) })
	assert.Panics(t, func() { array.NewPrimitive(arrow.FixedWidthTypes.Boolean, values, nil) })

	a := array.NewPrimitive(arrow.FixedWidthTypes.Timestamp_ns, buffer.FromSlice([]arrow.Timestamp{5}), nil)
	assert.Equal(t, arrow.Timestamp(5), a.Value(0))
	a.Release()
}

func TestPrimitiveSliceSharesMemory(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewPrimitiveBuilder[uint16](mem, arrow.PrimitiveTypes.Uint16)
	defer b.Release()
	b.AppendValues([]uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, tools.Bools(1, 1, 0, 1, 1, 1, 1, 0, 1, 1))
	a := b.NewPrimitiveArray()
	allocated := mem.CurrentAlloc()

	s := array.NewSlice(a, 2, 8).(*array.Primitive[uint16])
	a.Release()
	assert.Equal(t, allocated, mem.CurrentAlloc())
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 2, s.NullN())
	assert.True(t, s.IsNull(0))
	assert.True(t, s.IsNull(5))
	assert.Equal(t, []uint16{2, 3, 4, 5, 6, 7}, s.Values())
	s.Release()

	assert.Panics(t, func() { array.NewSlice(s, 3, 2) })
}

func TestEqual(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	mk := func(v []float64, valid []bool) *array.Primitive[float64] {
		b := array.NewPrimitiveBuilder[float64](mem, arrow.PrimitiveTypes.Float64)
		defer b.Release()
		b.AppendValues(v, valid)
		return b.NewPrimitiveArray()
	}

	a := mk([]float64{1, 2, 3}, tools.Bools(1, 0, 1))
	defer a.Release()
	same := mk([]float64{1, 99, 3}, tools.Bools(1, 0, 1))
	defer same.Release()
	diffValue := mk([]float64{1, 2, 4}, tools.Bools(1, 0, 1))
	defer diffValue.Release()
	diffNulls := mk([]float64{1, 2, 3}, tools.Bools(0, 1, 1))
	defer diffNulls.Release()
	allValid := mk([]float64{1, 2, 3}, nil)
	defer allValid.Release()

	assert.True(t, array.Equal(a, same), "values under nulls are ignored")
	assert.False(t, array.Equal(a, diffValue))
	assert.False(t, array.Equal(a, diffNulls))
	assert.False(t, array.Equal(a, allValid))

	ints := array.NewPrimitive(arrow.PrimitiveTypes.Int64, buffer.FromSlice([]int64{1, 2, 3}), nil)
	defer ints.Release()
	assert.False(t, array.Equal(allValid, ints), "different types")
}

func TestDecimalPrimitive(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	dt := &arrow.Decimal128Type{Precision: 38, Scale: 0}
	b := array.NewPrimitiveBuilder[decimal128.Num](mem, dt)
	defer b.Release()
	b.Append(decimal128.FromI64(-12))
	b.AppendNull()
	b.Append(decimal128.New(1, 0))

	a := b.NewPrimitiveArray()
	defer a.Release()
	out, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["-12", null, "18446744073709551616"]`, string(out))
}
