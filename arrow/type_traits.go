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

package arrow

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/apache/arrow-kernels/go/arrow/decimal128"
	"golang.org/x/exp/constraints"
)

// NativeType is the set of fixed-width, copyable element types that can be
// stored in a primitive array. The zero value of each type is the value
// written into null slots.
type NativeType interface {
	constraints.Integer | constraints.Float |
		decimal128.Num | DayTimeInterval | MonthDayNanoInterval
}

// IndexType is the set of integer types accepted as the element type of an
// index array.
type IndexType interface {
	constraints.Integer
}

// IndexToOffset converts an index value to a memory offset. It fails with
// ErrKeyOverflow when v is negative or does not fit in an int.
func IndexToOffset[I IndexType](v I) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: negative index %d", ErrKeyOverflow, v)
	}
	if uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("%w: index %d does not fit in an offset", ErrKeyOverflow, v)
	}
	return int(v), nil
}

// SizeOf returns the number of bytes used by a single value of T.
func SizeOf[T NativeType]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// CastFromBytesTo reinterprets the bytes of b as a slice of T. The
// capacity of b is preserved, rounded down to whole elements.
func CastFromBytesTo[T any](b []byte) []T {
	if cap(b) == 0 {
		return nil
	}
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	size := int(unsafe.Sizeof(*ptr))
	return unsafe.Slice(ptr, cap(b)/size)[:len(b)/size]
}

// CastToBytes reinterprets a slice of T as its underlying bytes.
func CastToBytes[T any](v []T) []byte {
	if cap(v) == 0 {
		return nil
	}
	ptr := unsafe.SliceData(v)
	size := int(unsafe.Sizeof(*ptr))
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), cap(v)*size)[:len(v)*size]
}
