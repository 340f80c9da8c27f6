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
	"github.com/apache/arrow-kernels/go/arrow/internal/debug"
	"github.com/apache/arrow-kernels/go/arrow/memory"
)

// TakePrimitive gathers values[indices[k]] for every k. Output slot k is
// null when index k is null or points at a null value. Every index is
// range checked; the first index that cannot address values aborts the
// call with a wrapped arrow.ErrKeyOverflow and no array is returned.
func TakePrimitive[T arrow.NativeType, I arrow.IndexType](mem memory.Allocator, values *array.Primitive[T], indices *array.Primitive[I]) (*array.Primitive[T], error) {
	args := takeArgs[T, *buffer.Buffer[T]]{
		mem:             mem,
		n:               indices.Len(),
		offset:          checkedOffsets(indices.Values()),
		indicesValidity: indices.Validity(),
		src:             primitiveSource[T]{values: values.Values(), validity: values.Validity()},
		collect:         collectPrimitive[T](mem),
	}
	return takePrimitive(values, indices, args)
}

func takePrimitive[T arrow.NativeType, I arrow.IndexType](values *array.Primitive[T], indices *array.Primitive[I], args takeArgs[T, *buffer.Buffer[T]]) (*array.Primitive[T], error) {
	out, validity, err := take(args, values.NullN() > 0, indices.NullN() > 0)
	if err != nil {
		logAbort(values.DataType(), err)
		return nil, err
	}
	defer out.Release()
	if validity != nil {
		defer validity.Release()
	}
	return array.NewPrimitive(values.DataType(), out, validity), nil
}

// TakeBoolean is TakePrimitive for boolean values. Null slots hold false.
func TakeBoolean[I arrow.IndexType](mem memory.Allocator, values *array.Boolean, indices *array.Primitive[I]) (*array.Boolean, error) {
	args := takeArgs[bool, *bitmap.Bitmap]{
		mem:             mem,
		n:               indices.Len(),
		offset:          checkedOffsets(indices.Values()),
		indicesValidity: indices.Validity(),
		src:             booleanSource{values: values.Values(), validity: values.Validity()},
		collect:         collectBoolean(mem),
	}
	return takeBoolean(values, indices, args)
}

func takeBoolean[I arrow.IndexType](values *array.Boolean, indices *array.Primitive[I], args takeArgs[bool, *bitmap.Bitmap]) (*array.Boolean, error) {
	out, validity, err := take(args, values.NullN() > 0, indices.NullN() > 0)
	if err != nil {
		logAbort(values.DataType(), err)
		return nil, err
	}
	defer out.Release()
	if validity != nil {
		defer validity.Release()
	}
	return array.NewBoolean(out, validity), nil
}

// TakeFixedSizeBinary is TakePrimitive for fixed-size binary values. Null
// slots hold ByteWidth zero bytes.
func TakeFixedSizeBinary[I arrow.IndexType](mem memory.Allocator, values *array.FixedSizeBinary, indices *array.Primitive[I]) (*array.FixedSizeBinary, error) {
	args := takeArgs[[]byte, *buffer.Buffer[byte]]{
		mem:             mem,
		n:               indices.Len(),
		offset:          checkedOffsets(indices.Values()),
		indicesValidity: indices.Validity(),
		src: fixedSizeBinarySource{
			width:    values.ByteWidth(),
			length:   values.Len(),
			values:   values.ValueBytes(),
			validity: values.Validity(),
		},
		collect: collectFixedSizeBinary(mem, values.ByteWidth()),
	}
	return takeFixedSizeBinary(values, indices, args)
}

func takeFixedSizeBinary[I arrow.IndexType](values *array.FixedSizeBinary, indices *array.Primitive[I], args takeArgs[[]byte, *buffer.Buffer[byte]]) (*array.FixedSizeBinary, error) {
	out, validity, err := take(args, values.NullN() > 0, indices.NullN() > 0)
	if err != nil {
		logAbort(values.DataType(), err)
		return nil, err
	}
	defer out.Release()
	if validity != nil {
		defer validity.Release()
	}
	dt := values.DataType().(*arrow.FixedSizeBinaryType)
	return array.NewFixedSizeBinary(dt, args.n, out, validity), nil
}

func logAbort(dt arrow.DataType, err error) {
	debug.Log(func() string { return fmt.Sprintf("take on %s aborted: %v", dt, err) })
}
