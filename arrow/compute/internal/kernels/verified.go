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
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// VerifiedIndices is an index array whose non-null entries are known to
// be offsets below Bound. It can only be obtained from VerifyIndices, and
// is accepted by the Take*Verified kernels, which skip conversion and
// range checks.
//
// A VerifiedIndices holds a reference to its indices until Release.
type VerifiedIndices[I arrow.IndexType] struct {
	indices *array.Primitive[I]
	bound   int
}

// VerifyIndices checks that every non-null entry of indices is a valid
// offset into an array of length bound. Null entries are not inspected.
func VerifyIndices[I arrow.IndexType](indices *array.Primitive[I], bound int) (*VerifiedIndices[I], error) {
	if bound < 0 {
		return nil, fmt.Errorf("%w: negative bound %d", arrow.ErrInvalidArgument, bound)
	}
	validity := indices.Validity()
	for k, v := range indices.Values() {
		if validity != nil && !validity.Value(k) {
			continue
		}
		off, err := arrow.IndexToOffset(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", k, err)
		}
		if off >= bound {
			return nil, fmt.Errorf("index %d: %w", k, errOutOfRange(off, bound))
		}
	}
	indices.Retain()
	return &VerifiedIndices[I]{indices: indices, bound: bound}, nil
}

// Len returns the number of indices, or 0 once released.
func (v *VerifiedIndices[I]) Len() int {
	if v.indices == nil {
		return 0
	}
	return v.indices.Len()
}

// Bound returns the length the indices were verified against.
func (v *VerifiedIndices[I]) Bound() int { return v.bound }

// Indices returns the verified index array. It must not be released by
// the caller.
func (v *VerifiedIndices[I]) Indices() *array.Primitive[I] { return v.indices }

// Release drops the reference to the index array.
func (v *VerifiedIndices[I]) Release() {
	if v.indices != nil {
		v.indices.Release()
		v.indices = nil
	}
}

// usableFor fails if v was released or was verified against fewer values
// than length.
func (v *VerifiedIndices[I]) usableFor(length int) error {
	if v.indices == nil {
		return fmt.Errorf("%w: verified indices were released", arrow.ErrInvalidArgument)
	}
	if length < v.bound {
		return fmt.Errorf("%w: indices verified for length %d, values have length %d",
			arrow.ErrInvalidArgument, v.bound, length)
	}
	return nil
}

// TakePrimitiveVerified is TakePrimitive without per-index checks.
func TakePrimitiveVerified[T arrow.NativeType, I arrow.IndexType](mem memory.Allocator, values *array.Primitive[T], indices *VerifiedIndices[I]) (*array.Primitive[T], error) {
	if err := indices.usableFor(values.Len()); err != nil {
		return nil, err
	}
	idx := indices.indices
	args := takeArgs[T, *buffer.Buffer[T]]{
		mem:             mem,
		n:               idx.Len(),
		offset:          verifiedOffsets(idx.Values()),
		indicesValidity: idx.Validity(),
		src:             uncheckedPrimitiveSource[T]{values: values.Values(), validity: values.Validity()},
		collect:         collectPrimitive[T](mem),
	}
	return takePrimitive(values, idx, args)
}

// TakeBooleanVerified is TakeBoolean without per-index checks.
func TakeBooleanVerified[I arrow.IndexType](mem memory.Allocator, values *array.Boolean, indices *VerifiedIndices[I]) (*array.Boolean, error) {
	if err := indices.usableFor(values.Len()); err != nil {
		return nil, err
	}
	idx := indices.indices
	args := takeArgs[bool, *bitmap.Bitmap]{
		mem:             mem,
		n:               idx.Len(),
		offset:          verifiedOffsets(idx.Values()),
		indicesValidity: idx.Validity(),
		src:             uncheckedBooleanSource{values: values.Values(), validity: values.Validity()},
		collect:         collectBoolean(mem),
	}
	return takeBoolean(values, idx, args)
}

// TakeFixedSizeBinaryVerified is TakeFixedSizeBinary without per-index
// checks.
func TakeFixedSizeBinaryVerified[I arrow.IndexType](mem memory.Allocator, values *array.FixedSizeBinary, indices *VerifiedIndices[I]) (*array.FixedSizeBinary, error) {
	if err := indices.usableFor(values.Len()); err != nil {
		return nil, err
	}
	idx := indices.indices
	args := takeArgs[[]byte, *buffer.Buffer[byte]]{
		mem:             mem,
		n:               idx.Len(),
		offset:          verifiedOffsets(idx.Values()),
		indicesValidity: idx.Validity(),
		src: uncheckedFixedSizeBinarySource{
			width:    values.ByteWidth(),
			length:   values.Len(),
			values:   values.ValueBytes(),
			validity: values.Validity(),
		},
		collect: collectFixedSizeBinary(mem, values.ByteWidth()),
	}
	return takeFixedSizeBinary(values, idx, args)
}
