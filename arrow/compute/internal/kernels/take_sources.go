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

	"github.com/JohnCGriffin/overflow"
	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

func errOutOfRange(off, length int) error {
	return fmt.Errorf("%w: offset %d out of range for array of length %d", arrow.ErrKeyOverflow, off, length)
}

// checkedValid reads the validity bit at off, treating a nil validity as
// all set.
func checkedValid(validity *bitmap.Bitmap, off, length int) (bool, error) {
	if validity == nil {
		if uint(off) >= uint(length) {
			return false, errOutOfRange(off, length)
		}
		return true, nil
	}
	v, ok := validity.Lookup(off)
	if !ok {
		return false, errOutOfRange(off, length)
	}
	return v, nil
}

type primitiveSource[T arrow.NativeType] struct {
	values   []T
	validity *bitmap.Bitmap
}

func (s primitiveSource[T]) value(off int) (T, error) {
	if uint(off) >= uint(len(s.values)) {
		var z T
		return z, errOutOfRange(off, len(s.values))
	}
	return s.values[off], nil
}

func (s primitiveSource[T]) valid(off int) (bool, error) {
	return checkedValid(s.validity, off, len(s.values))
}

// uncheckedPrimitiveSource trusts every offset it is given.
type uncheckedPrimitiveSource[T arrow.NativeType] struct {
	values   []T
	validity *bitmap.Bitmap
}

func (s uncheckedPrimitiveSource[T]) value(off int) (T, error) { return s.values[off], nil }

func (s uncheckedPrimitiveSource[T]) valid(off int) (bool, error) {
	return s.validity == nil || s.validity.Value(off), nil
}

type booleanSource struct {
	values   *bitmap.Bitmap
	validity *bitmap.Bitmap
}

func (s booleanSource) value(off int) (bool, error) {
	v, ok := s.values.Lookup(off)
	if !ok {
		return false, errOutOfRange(off, s.values.Len())
	}
	return v, nil
}

func (s booleanSource) valid(off int) (bool, error) {
	return checkedValid(s.validity, off, s.values.Len())
}

type uncheckedBooleanSource booleanSource

func (s uncheckedBooleanSource) value(off int) (bool, error) { return s.values.Value(off), nil }

func (s uncheckedBooleanSource) valid(off int) (bool, error) {
	return s.validity == nil || s.validity.Value(off), nil
}

type fixedSizeBinarySource struct {
	width    int
	length   int
	values   []byte
	validity *bitmap.Bitmap
}

func (s fixedSizeBinarySource) value(off int) ([]byte, error) {
	if uint(off) >= uint(s.length) {
		return nil, errOutOfRange(off, s.length)
	}
	start := off * s.width
	return s.values[start : start+s.width], nil
}

func (s fixedSizeBinarySource) valid(off int) (bool, error) {
	return checkedValid(s.validity, off, s.length)
}

type uncheckedFixedSizeBinarySource fixedSizeBinarySource

func (s uncheckedFixedSizeBinarySource) value(off int) ([]byte, error) {
	start := off * s.width
	return s.values[start : start+s.width], nil
}

func (s uncheckedFixedSizeBinarySource) valid(off int) (bool, error) {
	return s.validity == nil || s.validity.Value(off), nil
}

func checkedOffsets[I arrow.IndexType](indices []I) offsetFn {
	return func(k int) (int, error) { return arrow.IndexToOffset(indices[k]) }
}

func verifiedOffsets[I arrow.IndexType](indices []I) offsetFn {
	return func(k int) (int, error) { return int(indices[k]), nil }
}

func collectPrimitive[T arrow.NativeType](mem memory.Allocator) collectFn[T, *buffer.Buffer[T]] {
	return func(n int, fn func(int) (T, error)) (*buffer.Buffer[T], error) {
		return buffer.FromTrustedLen(mem, n, fn)
	}
}

func collectBoolean(mem memory.Allocator) collectFn[bool, *bitmap.Bitmap] {
	return func(n int, fn func(int) (bool, error)) (*bitmap.Bitmap, error) {
		return bitmap.FromTrustedLen(mem, n, fn)
	}
}

// collectFixedSizeBinary writes width bytes per value. A nil value is
// written as zeros.
func collectFixedSizeBinary(mem memory.Allocator, width int) collectFn[[]byte, *buffer.Buffer[byte]] {
	return func(n int, fn func(int) ([]byte, error)) (*buffer.Buffer[byte], error) {
		size, ok := overflow.Mul(n, width)
		if !ok {
			return nil, fmt.Errorf("%w: %d values of width %d overflow", arrow.ErrInvalidArgument, n, width)
		}
		out := buffer.NewMutableWithCapacity[byte](mem, size)
		for k := 0; k < n; k++ {
			v, err := fn(k)
			if err != nil {
				out.Release()
				return nil, err
			}
			if v == nil {
				out.AppendN(0, width)
			} else {
				out.AppendValues(v)
			}
		}
		return out.Finish(), nil
	}
}
