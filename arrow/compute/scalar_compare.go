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

package compute

import (
	"context"
	"fmt"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/array"
	"github.com/apache/arrow-kernels/go/arrow/compute/internal/kernels"
	"github.com/apache/arrow-kernels/go/arrow/compute/simd8"
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// CompareOperator selects the comparison applied by CompareArrays and
// CompareScalar.
type CompareOperator = simd8.Op

const (
	Equal        = simd8.OpEq
	NotEqual     = simd8.OpNeq
	Less         = simd8.OpLt
	LessEqual    = simd8.OpLtEq
	Greater      = simd8.OpGt
	GreaterEqual = simd8.OpGtEq
)

// CompareArrays compares left and right element by element. Both must
// have the same data type and length. Element i of the result is null
// when either input is null at i. Interval types only support Equal and
// NotEqual.
func CompareArrays(ctx context.Context, op CompareOperator, left, right arrow.Array) (*array.Boolean, error) {
	if !arrow.TypeEqual(left.DataType(), right.DataType()) {
		return nil, fmt.Errorf("%w: cannot compare %s with %s",
			arrow.ErrInvalidArgument, left.DataType(), right.DataType())
	}

	mem := GetAllocator(ctx)
	switch l := left.(type) {
	case *array.Primitive[int8]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[int16]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[int32]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[int64]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[uint8]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[uint16]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[uint32]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[uint64]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[float32]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[float64]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.Date32]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.Date64]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.Timestamp]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.Time32]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.Time64]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.Duration]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[arrow.MonthInterval]:
		return compareOrdered(mem, op, l, right)
	case *array.Primitive[decimal128.Num]:
		r, err := sameType(l, right)
		if err != nil {
			return nil, err
		}
		return kernels.CompareDecimal(mem, op, l, r)
	case *array.Primitive[arrow.DayTimeInterval]:
		return compareEquality(mem, op, l, right)
	case *array.Primitive[arrow.MonthDayNanoInterval]:
		return compareEquality(mem, op, l, right)
	}
	return nil, fmt.Errorf("%w: comparison of %s", arrow.ErrNotImplemented, left.DataType())
}

func sameType[T arrow.NativeType](left *array.Primitive[T], right arrow.Array) (*array.Primitive[T], error) {
	r, ok := right.(*array.Primitive[T])
	if !ok {
		return nil, fmt.Errorf("%w: expected %T, got %T", arrow.ErrType, left, right)
	}
	return r, nil
}

func compareOrdered[T kernels.OrderedNative](mem memory.Allocator, op CompareOperator, left *array.Primitive[T], right arrow.Array) (*array.Boolean, error) {
	r, err := sameType(left, right)
	if err != nil {
		return nil, err
	}
	return kernels.CompareOrdered(mem, op, left, r)
}

func compareEquality[T arrow.NativeType](mem memory.Allocator, op CompareOperator, left *array.Primitive[T], right arrow.Array) (*array.Boolean, error) {
	r, err := sameType(left, right)
	if err != nil {
		return nil, err
	}
	return kernels.CompareEquality(mem, op, left, r)
}

// CompareScalar compares every element of left with right, which must be
// a value of left's element type, such as int32 for an int32 array or
// decimal128.Num for a decimal array.
func CompareScalar(ctx context.Context, op CompareOperator, left arrow.Array, right any) (*array.Boolean, error) {
	mem := GetAllocator(ctx)
	switch l := left.(type) {
	case *array.Primitive[int8]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[int16]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[int32]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[int64]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[uint8]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[uint16]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[uint32]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[uint64]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[float32]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[float64]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.Date32]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.Date64]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.Timestamp]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.Time32]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.Time64]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.Duration]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[arrow.MonthInterval]:
		return compareOrderedScalar(mem, op, l, right)
	case *array.Primitive[decimal128.Num]:
		r, err := scalarOf(l, right)
		if err != nil {
			return nil, err
		}
		return kernels.CompareDecimalScalar(mem, op, l, r)
	case *array.Primitive[arrow.DayTimeInterval]:
		return compareEqualityScalar(mem, op, l, right)
	case *array.Primitive[arrow.MonthDayNanoInterval]:
		return compareEqualityScalar(mem, op, l, right)
	}
	return nil, fmt.Errorf("%w: comparison of %s", arrow.ErrNotImplemented, left.DataType())
}

func scalarOf[T arrow.NativeType](left *array.Primitive[T], right any) (T, error) {
	r, ok := right.(T)
	if !ok {
		return r, fmt.Errorf("%w: cannot compare %s with a scalar of type %T",
			arrow.ErrInvalidArgument, left.DataType(), right)
	}
	return r, nil
}

func compareOrderedScalar[T kernels.OrderedNative](mem memory.Allocator, op CompareOperator, left *array.Primitive[T], right any) (*array.Boolean, error) {
	r, err := scalarOf(left, right)
	if err != nil {
		return nil, err
	}
	return kernels.CompareOrderedScalar(mem, op, left, r)
}

func compareEqualityScalar[T arrow.NativeType](mem memory.Allocator, op CompareOperator, left *array.Primitive[T], right any) (*array.Boolean, error) {
	r, err := scalarOf(left, right)
	if err != nil {
		return nil, err
	}
	return kernels.CompareEqualityScalar(mem, op, left, r)
}
