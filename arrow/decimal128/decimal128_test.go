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

package decimal128

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromU64(t *testing.T) {
	for _, tc := range []struct {
		v    uint64
		want Num
		sign int
	}{
		{0, Num{0, 0}, 0},
		{1, Num{1, 0}, +1},
		{2, Num{2, 0}, +1},
		{math.MaxInt64, Num{math.MaxInt64, 0}, +1},
		{math.MaxUint64, Num{math.MaxUint64, 0}, +1},
	} {
		t.Run(fmt.Sprintf("%+0#x", tc.v), func(t *testing.T) {
			v := FromU64(tc.v)
			ref := new(big.Int).SetUint64(tc.v)
			if got, want := v, tc.want; got != want {
				t.Fatalf("invalid value. got=%+0#x, want=%+0#x (big-int=%+0#x)", got, want, ref)
			}
			if got, want := v.Sign(), tc.sign; got != want {
				t.Fatalf("invalid sign for %+0#x: got=%v, want=%v", v, got, want)
			}
			if got, want := v.Sign(), ref.Sign(); got != want {
				t.Fatalf("invalid sign for %+0#x: got=%v, want=%v", v, got, want)
			}
		})
	}
}

func TestFromI64(t *testing.T) {
	for _, tc := range []struct {
		v    int64
		want Num
		sign int
	}{
		{0, Num{0, 0}, 0},
		{1, Num{1, 0}, 1},
		{2, Num{2, 0}, 1},
		{math.MaxInt64, Num{math.MaxInt64, 0}, 1},
		{math.MinInt64, Num{u64Cnv(math.MinInt64), -1}, -1},
	} {
		t.Run(fmt.Sprintf("%+0#x", tc.v), func(t *testing.T) {
			v := FromI64(tc.v)
			ref := big.NewInt(tc.v)
			if got, want := v, tc.want; got != want {
				t.Fatalf("invalid value. got=%+0#x, want=%+0#x (big-int=%+0#x)", got, want, ref)
			}
			if got, want := v.Sign(), ref.Sign(); got != want {
				t.Fatalf("invalid sign for %+0#x: got=%v, want=%v", v, got, want)
			}
			assert.Equal(t, ref.String(), v.BigInt().String())
		})
	}
}

func u64Cnv(i int64) uint64 { return uint64(i) }

func TestCmp(t *testing.T) {
	values := []Num{
		FromI64(math.MinInt64),
		FromI64(-2),
		FromI64(-1),
		{},
		FromU64(1),
		FromU64(math.MaxUint64),
		New(1, 0),
		MaxDecimal128,
	}

	for i, a := range values {
		for j, b := range values {
			want := a.BigInt().Cmp(b.BigInt())
			assert.Equalf(t, want, a.Cmp(b), "cmp(%s, %s)", a, b)
			assert.Equalf(t, i < j, a.Less(b), "less(%s, %s)", a, b)
			assert.Equalf(t, i > j, a.Greater(b), "greater(%s, %s)", a, b)
		}
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "18446744073709551616", "-18446744073709551617", "9999999999999999999999999999999999999",
		"170141183460469231731687303715884105727", "-170141183460469231731687303715884105728"} {
		t.Run(s, func(t *testing.T) {
			v, ok := new(big.Int).SetString(s, 10)
			assert.True(t, ok)
			n := FromBigInt(v)
			assert.Equal(t, s, n.BigInt().String())
			assert.Equal(t, s, n.String())
		})
	}
}

func TestFitsInNum(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 127)
	minusOne := big.NewInt(-1)

	assert.True(t, FitsInNum(new(big.Int).Neg(limit)))
	assert.True(t, FitsInNum(new(big.Int).Add(limit, minusOne)))
	assert.False(t, FitsInNum(limit))
	assert.False(t, FitsInNum(new(big.Int).Sub(new(big.Int).Neg(limit), big.NewInt(1))))

	n := FromBigInt(new(big.Int).Neg(limit))
	assert.Equal(t, New(math.MinInt64, 0), n)
	assert.Equal(t, -1, n.Sign())
	assert.Panics(t, func() { FromBigInt(limit) })
}

func TestNegate(t *testing.T) {
	assert.Equal(t, FromI64(-5), FromI64(5).Negate())
	assert.Equal(t, Num{}, Num{}.Negate())
	assert.Equal(t, New(-1, 0), New(1, 0).Negate())
}
