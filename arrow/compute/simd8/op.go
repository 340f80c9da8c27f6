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

import "golang.org/x/exp/constraints"

// Op names a lane comparison.
type Op int8

const (
	OpEq Op = iota
	OpNeq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
)

var opNames = [...]string{"equal", "not_equal", "less", "less_equal", "greater", "greater_equal"}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// IsEquality reports whether op only needs equality of elements.
func (op Op) IsEquality() bool { return op == OpEq || op == OpNeq }

// Compare applies op to a and b.
func Compare[T constraints.Ordered](op Op, a, b Vector[T]) uint8 {
	switch op {
	case OpEq:
		return a.Eq(b)
	case OpNeq:
		return a.Neq(b)
	case OpLt:
		return Lt(a, b)
	case OpLtEq:
		return LtEq(a, b)
	case OpGt:
		return Gt(a, b)
	case OpGtEq:
		return GtEq(a, b)
	}
	panic("simd8: invalid comparison " + op.String())
}

// CompareFunc applies op to a and b, ordering elements with cmp.
func CompareFunc[T comparable](op Op, a, b Vector[T], cmp func(x, y T) int) uint8 {
	switch op {
	case OpEq:
		return a.Eq(b)
	case OpNeq:
		return a.Neq(b)
	case OpLt:
		return LtFunc(a, b, cmp)
	case OpLtEq:
		return LtEqFunc(a, b, cmp)
	case OpGt:
		return GtFunc(a, b, cmp)
	case OpGtEq:
		return GtEqFunc(a, b, cmp)
	}
	panic("simd8: invalid comparison " + op.String())
}

// CompareEquality applies an equality op to a and b. It panics for
// ordering ops.
func CompareEquality[T comparable](op Op, a, b Vector[T]) uint8 {
	switch op {
	case OpEq:
		return a.Eq(b)
	case OpNeq:
		return a.Neq(b)
	}
	panic("simd8: " + op.String() + " needs ordered elements")
}
