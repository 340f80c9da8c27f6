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

package simd8_test

import (
	"math"
	"testing"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/compute/simd8"
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/constraints"
)

func refMask[T comparable](a, b simd8.Vector[T], pred func(x, y T) bool) uint8 {
	var mask uint8
	for i := 0; i < simd8.Lanes; i++ {
		if pred(a[i], b[i]) {
			mask |= 1 << i
		}
	}
	return mask
}

func checkOrdered[T constraints.Ordered](t *testing.T, a, b []T) {
	t.Helper()
	va, vb := simd8.FromChunk(a), simd8.FromChunk(b)
	assert.Equal(t, refMask(va, vb, func(x, y T) bool { return x == y }), va.Eq(vb))
	assert.Equal(t, refMask(va, vb, func(x, y T) bool { return x != y }), va.Neq(vb))
	assert.Equal(t, refMask(va, vb, func(x, y T) bool { return x < y }), simd8.Lt(va, vb))
	assert.Equal(t, refMask(va, vb, func(x, y T) bool { return x <= y }), simd8.LtEq(va, vb))
	assert.Equal(t, refMask(va, vb, func(x, y T) bool { return x > y }), simd8.Gt(va, vb))
	assert.Equal(t, refMask(va, vb, func(x, y T) bool { return x >= y }), simd8.GtEq(va, vb))
}

func TestOrderedMasks(t *testing.T) {
	checkOrdered(t, []int8{-1, 0, 1, 2, 3, 4, 5, 127}, []int8{0, 0, 0, 3, 3, 3, -128, 127})
	checkOrdered(t, []uint8{0, 1, 2, 3, 4, 5, 6, 7}, []uint8{7, 6, 5, 4, 3, 2, 1, 0})
	checkOrdered(t, []int16{1, 1, 1, 1, 2, 2, 2, 2}, []int16{1, 2, 0, 1, 2, 3, 1, 2})
	checkOrdered(t, []uint16{9, 9, 9, 9, 9, 9, 9, 9}, []uint16{8, 9, 10, 8, 9, 10, 8, 9})
	checkOrdered(t, []int32{math.MinInt32, 0, 5, 5, 6, 7, 8, math.MaxInt32}, []int32{0, 0, 4, 6, 6, 6, 9, math.MaxInt32})
	checkOrdered(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8}, []uint32{1, 1, 4, 4, 6, 6, 8, 8})
	checkOrdered(t, []int64{-5, -4, -3, -2, -1, 0, 1, 2}, []int64{2, 1, 0, -1, -2, -3, -4, -5})
	checkOrdered(t, []uint64{0, math.MaxUint64, 3, 3, 3, 3, 3, 3}, []uint64{0, 0, 1, 2, 3, 4, 5, 6})
	checkOrdered(t, []float32{0.5, -0.5, 1, 2, 3, 4, 5, 6}, []float32{0.5, 0.5, 1, 1, 4, 4, 5, 7})
	checkOrdered(t, []float64{math.Inf(-1), -1, 0, 1, math.Inf(1), 2, 3, 4}, []float64{0, -1, 0, 2, math.Inf(1), 1, 3, 5})
}

func TestKnownMask(t *testing.T) {
	a := simd8.FromChunk([]int32{1, 2, 3, 4, 5, 6, 7, 8})
	b := simd8.Splat[int32](4)
	assert.Equal(t, uint8(0b00000111), simd8.Lt(a, b))
	assert.Equal(t, uint8(0b00001000), a.Eq(b))
	assert.Equal(t, uint8(0b11110000), simd8.Gt(a, b))
	assert.Equal(t, uint8(0b11110111), a.Neq(b))
}

func TestNaNLanes(t *testing.T) {
	nan := math.NaN()
	a := simd8.Splat(nan)
	assert.Zero(t, a.Eq(a))
	assert.Equal(t, uint8(0xFF), a.Neq(a))
	assert.Zero(t, simd8.Lt(a, simd8.Splat(1.0)))
	assert.Zero(t, simd8.GtEq(a, a))
}

func TestDecimalMasks(t *testing.T) {
	vals := []decimal128.Num{
		decimal128.FromI64(-3), decimal128.FromI64(0), decimal128.New(1, 0), decimal128.FromI64(7),
		decimal128.FromI64(7), decimal128.New(-1, 0), decimal128.FromU64(math.MaxUint64), decimal128.FromI64(2),
	}
	pivot := simd8.Splat(decimal128.FromI64(7))
	a := simd8.FromChunk(vals)
	cmp := decimal128.Num.Cmp

	assert.Equal(t, refMask(a, pivot, func(x, y decimal128.Num) bool { return x.Less(y) }), simd8.LtFunc(a, pivot, cmp))
	assert.Equal(t, refMask(a, pivot, func(x, y decimal128.Num) bool { return !y.Less(x) }), simd8.LtEqFunc(a, pivot, cmp))
	assert.Equal(t, refMask(a, pivot, func(x, y decimal128.Num) bool { return x.Greater(y) }), simd8.GtFunc(a, pivot, cmp))
	assert.Equal(t, refMask(a, pivot, func(x, y decimal128.Num) bool { return !x.Less(y) }), simd8.GtEqFunc(a, pivot, cmp))
	assert.Equal(t, uint8(0b00011000), a.Eq(pivot))
	assert.Equal(t, uint8(0b00000011|0b00100000|0b10000000), simd8.LtFunc(a, pivot, cmp))
}

func TestIntervalEquality(t *testing.T) {
	dt := []arrow.DayTimeInterval{
		{Days: 1, Milliseconds: 2}, {Days: 1, Milliseconds: 3}, {Milliseconds: 2}, {Days: 1, Milliseconds: 2},
		{Days: 1, Milliseconds: 2}, {Days: 1, Milliseconds: 2}, {Days: 5, Milliseconds: 5}, {Days: 1, Milliseconds: 2},
	}
	a := simd8.FromChunk(dt)
	b := simd8.Splat(arrow.DayTimeInterval{Days: 1, Milliseconds: 2})
	assert.Equal(t, uint8(0b10111001), a.Eq(b))
	assert.Equal(t, uint8(0b01000110), a.Neq(b))
	assert.Equal(t, a.Eq(b), simd8.CompareEquality(simd8.OpEq, a, b))
	assert.Panics(t, func() { simd8.CompareEquality(simd8.OpLt, a, b) })

	mdn := simd8.Splat(arrow.MonthDayNanoInterval{Months: 1, Days: 2, Nanoseconds: 3})
	other := mdn
	other[4].Nanoseconds = 4
	assert.Equal(t, uint8(0b11101111), mdn.Eq(other))
}

// A partial chunk padded with any value agrees with the full comparison on
// the lanes that hold real values.
func TestIncompleteChunkAgreesOnRealLanes(t *testing.T) {
	lhs := []int64{5, -1, 9, 0, 3, 3, 7, 100}
	rhs := []int64{4, -1, 10, 0, 2, 3, 8, -100}
	full := simd8.Compare(simd8.OpLtEq, simd8.FromChunk(lhs), simd8.FromChunk(rhs))

	for n := 0; n <= simd8.Lanes; n++ {
		for _, pad := range []int64{0, lhs[0], math.MaxInt64, math.MinInt64} {
			got := simd8.Compare(simd8.OpLtEq,
				simd8.FromIncompleteChunk(lhs[:n], pad),
				simd8.FromIncompleteChunk(rhs[:n], pad))
			valid := uint8(1<<n - 1)
			assert.Equal(t, full&valid, got&valid, "n=%d pad=%d", n, pad)
		}
	}

	assert.Panics(t, func() { simd8.FromIncompleteChunk(make([]int64, 9), 0) })
	assert.Panics(t, func() { simd8.FromChunk(make([]int64, 7)) })
}

// Lanes past the real values hold the pad, so only the real lane that
// differs from it shows up in the mask.
func TestIncompleteChunkPadsWithValue(t *testing.T) {
	for _, b := range []int32{4, 3} {
		got := simd8.FromIncompleteChunk([]int32{3, b}, 3).Eq(simd8.Splat[int32](3))
		assert.Equal(t, uint8(0b11111101), got&^0b10, "b=%d", b)
		assert.Equal(t, b == 3, got&0b10 != 0, "b=%d", b)
	}

	a := arrow.DayTimeInterval{Days: 1, Milliseconds: 2}
	for _, b := range []arrow.DayTimeInterval{{Days: 1, Milliseconds: 3}, a} {
		got := simd8.FromIncompleteChunk([]arrow.DayTimeInterval{a, b}, a).Eq(simd8.Splat(a))
		assert.Equal(t, uint8(0b11111101), got&^0b10, "b=%v", b)
		assert.Equal(t, b == a, got&0b10 != 0, "b=%v", b)
	}

	got := simd8.FromIncompleteChunk([]float64{1.5, 2.5}, 1.5).Eq(simd8.Splat(1.5))
	assert.Equal(t, uint8(0b11111101), got)
}

func TestCompareDispatch(t *testing.T) {
	a := simd8.FromChunk([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
	b := simd8.Splat[uint32](5)
	ops := map[simd8.Op]uint8{
		simd8.OpEq:   a.Eq(b),
		simd8.OpNeq:  a.Neq(b),
		simd8.OpLt:   simd8.Lt(a, b),
		simd8.OpLtEq: simd8.LtEq(a, b),
		simd8.OpGt:   simd8.Gt(a, b),
		simd8.OpGtEq: simd8.GtEq(a, b),
	}
	for op, exp := range ops {
		assert.Equal(t, exp, simd8.Compare(op, a, b), op.String())
	}
	assert.True(t, simd8.OpNeq.IsEquality())
	assert.False(t, simd8.OpGt.IsEquality())
	assert.Equal(t, "unknown", simd8.Op(42).String())
	assert.Panics(t, func() { simd8.Compare(simd8.Op(42), a, b) })
}
