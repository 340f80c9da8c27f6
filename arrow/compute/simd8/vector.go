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

package simd8

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Lanes is the number of values in a Vector.
const Lanes = 8

// Vector holds eight values of T.
type Vector[T comparable] [Lanes]T

// FromChunk loads the first eight values of v. It panics if v holds fewer
// than eight values.
func FromChunk[T comparable](v []T) Vector[T] {
	var out Vector[T]
	copy(out[:], v[:Lanes])
	return out
}

// FromIncompleteChunk loads the values of v and fills the lanes beyond
// len(v) with pad. It panics if v holds more than eight values.
func FromIncompleteChunk[T comparable](v []T, pad T) Vector[T] {
	if len(v) > Lanes {
		panic(fmt.Sprintf("simd8: chunk of %d values does not fit in %d lanes", len(v), Lanes))
	}
	var out Vector[T]
	n := copy(out[:], v)
	for i := n; i < Lanes; i++ {
		out[i] = pad
	}
	return out
}

// Splat returns a Vector with every lane set to v.
func Splat[T comparable](v T) Vector[T] {
	var out Vector[T]
	for i := range out {
		out[i] = v
	}
	return out
}

// Eq returns the mask of lanes where v equals other.
func (v Vector[T]) Eq(other Vector[T]) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if v[i] == other[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// Neq returns the mask of lanes where v differs from other.
func (v Vector[T]) Neq(other Vector[T]) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if v[i] != other[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// Lt returns the mask of lanes where a < b.
func Lt[T constraints.Ordered](a, b Vector[T]) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if a[i] < b[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// LtEq returns the mask of lanes where a <= b.
func LtEq[T constraints.Ordered](a, b Vector[T]) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if a[i] <= b[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// Gt returns the mask of lanes where a > b.
func Gt[T constraints.Ordered](a, b Vector[T]) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if a[i] > b[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// GtEq returns the mask of lanes where a >= b.
func GtEq[T constraints.Ordered](a, b Vector[T]) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if a[i] >= b[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// orderFunc sets bit i when pred(cmp(a[i], b[i])) holds.
func orderFunc[T comparable](a, b Vector[T], cmp func(x, y T) int, pred func(int) bool) uint8 {
	var mask uint8
	for i := 0; i < Lanes; i++ {
		if pred(cmp(a[i], b[i])) {
			mask |= 1 << i
		}
	}
	return mask
}

// LtFunc is Lt for element types ordered by cmp, which returns a negative
// number, zero or a positive number like decimal128.Num.Cmp.
func LtFunc[T comparable](a, b Vector[T], cmp func(x, y T) int) uint8 {
	return orderFunc(a, b, cmp, func(c int) bool { return c < 0 })
}

// LtEqFunc is LtEq for element types ordered by cmp.
func LtEqFunc[T comparable](a, b Vector[T], cmp func(x, y T) int) uint8 {
	return orderFunc(a, b, cmp, func(c int) bool { return c <= 0 })
}

// GtFunc is Gt for element types ordered by cmp.
func GtFunc[T comparable](a, b Vector[T], cmp func(x, y T) int) uint8 {
	return orderFunc(a, b, cmp, func(c int) bool { return c > 0 })
}

// GtEqFunc is GtEq for element types ordered by cmp.
func GtEqFunc[T comparable](a, b Vector[T], cmp func(x, y T) int) uint8 {
	return orderFunc(a, b, cmp, func(c int) bool { return c >= 0 })
}
