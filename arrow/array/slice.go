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

package array

import (
	"fmt"

	"github.com/apache/arrow-kernels/go/arrow"
)

type slicer interface {
	slice(i, j int) arrow.Array
}

// NewSlice returns a new array that is a zero-copy view of elements [i, j)
// of arr.
//
// NewSlice panics if the slice is outside the valid range of the input array.
// NewSlice panics if j < i.
func NewSlice(arr arrow.Array, i, j int) arrow.Array {
	if j > arr.Len() || i < 0 || i > j {
		panic("arrow/array: index out of range")
	}
	s, ok := arr.(slicer)
	if !ok {
		panic(fmt.Errorf("%w: cannot slice %T", arrow.ErrNotImplemented, arr))
	}
	return s.slice(i, j)
}
