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
	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// TakeArray returns an array of indices.Len() elements where element k is
// values[indices[k]]. Element k is null when index k is null or selects a
// null value. indices must hold integers. Any index that is negative or
// not below values.Len() fails the whole call with arrow.ErrKeyOverflow.
func TakeArray(ctx context.Context, values, indices arrow.Array) (arrow.Array, error) {
	switch idx := indices.(type) {
	case *array.Primitive[int8]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[int16]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[int32]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[int64]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[uint8]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[uint16]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[uint32]:
		return takeWith(ctx, values, idx, nil)
	case *array.Primitive[uint64]:
		return takeWith(ctx, values, idx, nil)
	}
	return nil, errIndexType(indices)
}

func errIndexType(indices arrow.Array) error {
	return fmt.Errorf("%w: indices must be integers, got %s", arrow.ErrInvalidArgument, indices.DataType())
}

// VerifiedIndices is an index array checked against a length by
// VerifyIndices. TakeVerified accepts it in place of the indices and
// skips the per-index checks.
type VerifiedIndices struct {
	indices arrow.Array
	bound   int
	take    func(ctx context.Context, values arrow.Array) (arrow.Array, error)
	release func()
}

// VerifyIndices checks once that every non-null entry of indices lies in
// [0, n).
func VerifyIndices(indices arrow.Array, n int) (*VerifiedIndices, error) {
	switch idx := indices.(type) {
	case *array.Primitive[int8]:
		return verifyWith(idx, n)
	case *array.Primitive[int16]:
		return verifyWith(idx, n)
	case *array.Primitive[int32]:
		return verifyWith(idx, n)
	case *array.Primitive[int64]:
		return verifyWith(idx, n)
	case *array.Primitive[uint8]:
		return verifyWith(idx, n)
	case *array.Primitive[uint16]:
		return verifyWith(idx, n)
	case *array.Primitive[uint32]:
		return verifyWith(idx, n)
	case *array.Primitive[uint64]:
		return verifyWith(idx, n)
	}
	return nil, errIndexType(indices)
}

func verifyWith[I arrow.IndexType](indices *array.Primitive[I], n int) (*VerifiedIndices, error) {
	v, err := kernels.VerifyIndices(indices, n)
	if err != nil {
		return nil, err
	}
	return &VerifiedIndices{
		indices: indices,
		bound:   n,
		take: func(ctx context.Context, values arrow.Array) (arrow.Array, error) {
			return takeWith(ctx, values, indices, v)
		},
		release: v.Release,
	}, nil
}

// Len returns the number of indices.
func (v *VerifiedIndices) Len() int { return v.indices.Len() }

// Bound returns the length the indices were verified against.
func (v *VerifiedIndices) Bound() int { return v.bound }

// Indices returns the verified index array.
func (v *VerifiedIndices) Indices() arrow.Array { return v.indices }

// Release drops the reference to the index array.
func (v *VerifiedIndices) Release() { v.release() }

// TakeVerified is TakeArray for indices verified against a length no
// greater than values.Len().
func TakeVerified(ctx context.Context, values arrow.Array, indices *VerifiedIndices) (arrow.Array, error) {
	return indices.take(ctx, values)
}

// takeWith runs the checked kernels, or the unchecked ones when verified
// is not nil.
func takeWith[I arrow.IndexType](ctx context.Context, values arrow.Array, indices *array.Primitive[I], verified *kernels.VerifiedIndices[I]) (arrow.Array, error) {
	mem := GetAllocator(ctx)
	switch v := values.(type) {
	case *array.Boolean:
		if verified != nil {
			return result(kernels.TakeBooleanVerified(mem, v, verified))
		}
		return result(kernels.TakeBoolean(mem, v, indices))
	case *array.FixedSizeBinary:
		if verified != nil {
			return result(kernels.TakeFixedSizeBinaryVerified(mem, v, verified))
		}
		return result(kernels.TakeFixedSizeBinary(mem, v, indices))
	case *array.Primitive[int8]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[int16]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[int32]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[int64]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[uint8]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[uint16]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[uint32]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[uint64]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[float32]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[float64]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.Date32]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.Date64]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.Timestamp]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.Time32]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.Time64]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.Duration]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.MonthInterval]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.DayTimeInterval]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[arrow.MonthDayNanoInterval]:
		return takePrimitive(mem, v, indices, verified)
	case *array.Primitive[decimal128.Num]:
		return takePrimitive(mem, v, indices, verified)
	}
	return nil, fmt.Errorf("%w: take on values of type %s", arrow.ErrNotImplemented, values.DataType())
}

func takePrimitive[T arrow.NativeType, I arrow.IndexType](mem memory.Allocator, values *array.Primitive[T], indices *array.Primitive[I], verified *kernels.VerifiedIndices[I]) (arrow.Array, error) {
	if verified != nil {
		return result(kernels.TakePrimitiveVerified(mem, values, verified))
	}
	return result(kernels.TakePrimitive(mem, values, indices))
}
