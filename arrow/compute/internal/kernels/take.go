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
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// accessor reads a source array by offset.
type accessor[T any] interface {
	// value returns the value stored at off, null or not.
	value(off int) (T, error)
	// valid reports the validity bit at off.
	valid(off int) (bool, error)
}

// offsetFn converts the k-th index into an offset into the values.
type offsetFn func(k int) (int, error)

// collectFn builds an output of exactly n values in a single pass,
// obtaining the k-th value from fn.
type collectFn[T, O any] func(n int, fn func(k int) (T, error)) (O, error)

// takeArgs is everything a strategy needs. indicesValidity is only read
// when the indices have nulls.
type takeArgs[T, O any] struct {
	mem             memory.Allocator
	n               int
	offset          offsetFn
	indicesValidity *bitmap.Bitmap
	src             accessor[T]
	collect         collectFn[T, O]
}

// take picks one of the four strategies from whether the values and the
// indices contain at least one null.
func take[T, O any](args takeArgs[T, O], valuesHaveNulls, indicesHaveNulls bool) (O, *bitmap.Bitmap, error) {
	switch {
	case !valuesHaveNulls && !indicesHaveNulls:
		return takeNoValidity(args)
	case valuesHaveNulls && !indicesHaveNulls:
		return takeValuesValidity(args)
	case !valuesHaveNulls && indicesHaveNulls:
		return takeIndicesValidity(args)
	default:
		return takeValuesIndicesValidity(args)
	}
}

// takeNoValidity: output is never null.
func takeNoValidity[T, O any](args takeArgs[T, O]) (O, *bitmap.Bitmap, error) {
	out, err := args.collect(args.n, func(k int) (T, error) {
		off, err := args.offset(k)
		if err != nil {
			var z T
			return z, err
		}
		return args.src.value(off)
	})
	return out, nil, err
}

// takeValuesValidity: output k is null when the value it points at is.
func takeValuesValidity[T, O any](args takeArgs[T, O]) (O, *bitmap.Bitmap, error) {
	validity := bitmap.NewMutableWithCapacity(args.mem, args.n)
	out, err := args.collect(args.n, func(k int) (T, error) {
		var z T
		off, err := args.offset(k)
		if err != nil {
			return z, err
		}
		v, err := args.src.value(off)
		if err != nil {
			return z, err
		}
		ok, err := args.src.valid(off)
		if err != nil {
			return z, err
		}
		validity.Append(ok)
		return v, nil
	})
	if err != nil {
		validity.Release()
		return out, nil, err
	}
	return out, validity.Finish(), nil
}

// takeIndicesValidity: output k is null when index k is. The output
// shares the validity of the indices.
func takeIndicesValidity[T, O any](args takeArgs[T, O]) (O, *bitmap.Bitmap, error) {
	out, err := args.collect(args.n, func(k int) (T, error) {
		var z T
		if !args.indicesValidity.Value(k) {
			return z, nil
		}
		off, err := args.offset(k)
		if err != nil {
			return z, err
		}
		return args.src.value(off)
	})
	if err != nil {
		return out, nil, err
	}
	args.indicesValidity.Retain()
	return out, args.indicesValidity, nil
}

// takeValuesIndicesValidity: output k is null when index k is null or
// points at a null value.
func takeValuesIndicesValidity[T, O any](args takeArgs[T, O]) (O, *bitmap.Bitmap, error) {
	validity := bitmap.NewMutableWithCapacity(args.mem, args.n)
	out, err := args.collect(args.n, func(k int) (T, error) {
		var z T
		if !args.indicesValidity.Value(k) {
			validity.Append(false)
			return z, nil
		}
		off, err := args.offset(k)
		if err != nil {
			return z, err
		}
		v, err := args.src.value(off)
		if err != nil {
			return z, err
		}
		ok, err := args.src.valid(off)
		if err != nil {
			return z, err
		}
		validity.Append(ok)
		return v, nil
	})
	if err != nil {
		validity.Release()
		return out, nil, err
	}
	return out, validity.Finish(), nil
}
