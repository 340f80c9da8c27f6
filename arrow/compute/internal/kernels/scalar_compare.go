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

package kernels

import (
	"fmt"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/array"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/bitutil"
	"github.com/apache/arrow-kernels/go/arrow/compute/simd8"
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"golang.org/x/exp/constraints"
)

// OrderedNative is the set of native types with a built-in ordering.
type OrderedNative interface {
	constraints.Integer | constraints.Float
}

type laneFn[T comparable] func(a, b simd8.Vector[T]) uint8

// loader returns the eight lanes starting at element lo.
type loader[T comparable] func(lo int) simd8.Vector[T]

// sliceLoader pads a short tail with its first element.
func sliceLoader[T comparable](v []T) loader[T] {
	return func(lo int) simd8.Vector[T] {
		if len(v)-lo >= simd8.Lanes {
			return simd8.FromChunk(v[lo:])
		}
		return simd8.FromIncompleteChunk(v[lo:], v[lo])
	}
}

func splatLoader[T comparable](v T) loader[T] {
	s := simd8.Splat(v)
	return func(int) simd8.Vector[T] { return s }
}

// compareBits writes one mask byte per chunk of eight elements. Bits past
// n in the last byte are cleared.
func compareBits[T comparable](mem memory.Allocator, n int, left, right loader[T], fn laneFn[T]) *bitmap.Bitmap {
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(int(bitutil.BytesForBits(int64(n))))
	out := buf.Bytes()
	for c := range out {
		lo := c * simd8.Lanes
		out[c] = fn(left(lo), right(lo))
	}
	if rem := n % simd8.Lanes; rem != 0 {
		out[len(out)-1] &= uint8(1)<<rem - 1
	}
	res := bitmap.New(buf, 0, n)
	buf.Release()
	return res
}

func checkOp(op simd8.Op) error {
	if op < simd8.OpEq || op > simd8.OpGtEq {
		return fmt.Errorf("%w: unknown comparison %d", arrow.ErrInvalidArgument, op)
	}
	return nil
}

func compareArrays[T arrow.NativeType](mem memory.Allocator, op simd8.Op, left, right *array.Primitive[T], fn laneFn[T]) (*array.Boolean, error) {
	if err := checkOp(op); err != nil {
		return nil, err
	}
	if left.Len() != right.Len() {
		return nil, fmt.Errorf("%w: cannot compare arrays of length %d and %d",
			arrow.ErrInvalidArgument, left.Len(), right.Len())
	}

	values := compareBits(mem, left.Len(), sliceLoader(left.Values()), sliceLoader(right.Values()), fn)
	defer values.Release()
	validity := bitmap.And(mem, left.Validity(), right.Validity())
	if validity != nil {
		defer validity.Release()
	}
	return array.NewBoolean(values, validity), nil
}

func compareScalar[T arrow.NativeType](mem memory.Allocator, op simd8.Op, left *array.Primitive[T], right T, fn laneFn[T]) (*array.Boolean, error) {
	if err := checkOp(op); err != nil {
		return nil, err
	}

	values := compareBits(mem, left.Len(), sliceLoader(left.Values()), splatLoader(right), fn)
	defer values.Release()
	return array.NewBoolean(values, left.Validity()), nil
}

func orderedLanes[T OrderedNative](op simd8.Op) laneFn[T] {
	return func(a, b simd8.Vector[T]) uint8 { return simd8.Compare(op, a, b) }
}

func decimalLanes(op simd8.Op) laneFn[decimal128.Num] {
	return func(a, b simd8.Vector[decimal128.Num]) uint8 {
		return simd8.CompareFunc(op, a, b, decimal128.Num.Cmp)
	}
}

func equalityLanes[T arrow.NativeType](op simd8.Op) (laneFn[T], error) {
	if !op.IsEquality() {
		if err := checkOp(op); err != nil {
			return nil, err
		}
		var z T
		return nil, fmt.Errorf("%w: %s on %T", arrow.ErrNotImplemented, op, z)
	}
	return func(a, b simd8.Vector[T]) uint8 { return simd8.CompareEquality(op, a, b) }, nil
}

// CompareOrdered compares left and right element by element. Slot i of
// the result is null when either input is null at i.
func CompareOrdered[T OrderedNative](mem memory.Allocator, op simd8.Op, left, right *array.Primitive[T]) (*array.Boolean, error) {
	return compareArrays(mem, op, left, right, orderedLanes[T](op))
}

// CompareOrderedScalar compares every element of left with right.
func CompareOrderedScalar[T OrderedNative](mem memory.Allocator, op simd8.Op, left *array.Primitive[T], right T) (*array.Boolean, error) {
	return compareScalar(mem, op, left, right, orderedLanes[T](op))
}

// CompareDecimal compares decimal128 arrays by their integer values.
func CompareDecimal(mem memory.Allocator, op simd8.Op, left, right *array.Primitive[decimal128.Num]) (*array.Boolean, error) {
	return compareArrays(mem, op, left, right, decimalLanes(op))
}

// CompareDecimalScalar compares every element of left with right.
func CompareDecimalScalar(mem memory.Allocator, op simd8.Op, left *array.Primitive[decimal128.Num], right decimal128.Num) (*array.Boolean, error) {
	return compareScalar(mem, op, left, right, decimalLanes(op))
}

// CompareEquality supports only simd8.OpEq and simd8.OpNeq, for element
// types without an ordering such as intervals.
func CompareEquality[T arrow.NativeType](mem memory.Allocator, op simd8.Op, left, right *array.Primitive[T]) (*array.Boolean, error) {
	fn, err := equalityLanes[T](op)
	if err != nil {
		return nil, err
	}
	return compareArrays(mem, op, left, right, fn)
}

// CompareEqualityScalar is CompareEquality against a single value.
func CompareEqualityScalar[T arrow.NativeType](mem memory.Allocator, op simd8.Op, left *array.Primitive[T], right T) (*array.Boolean, error) {
	fn, err := equalityLanes[T](op)
	if err != nil {
		return nil, err
	}
	return compareScalar(mem, op, left, right, fn)
}
