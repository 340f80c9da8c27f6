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

// Package gen builds random arrays for tests.
package gen

import (
	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/array"
	"github.com/apache/arrow-kernels/go/arrow/bitmap"
	"github.com/apache/arrow-kernels/go/arrow/bitutil"
	"github.com/apache/arrow-kernels/go/arrow/buffer"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomArrayGenerator is a struct used for constructing Random Arrow arrays
// for use with testing.
type RandomArrayGenerator struct {
	seed     uint64
	extra    uint64
	src      rand.Source
	seedRand *rand.Rand
	mem      memory.Allocator
}

// NewRandomArrayGenerator constructs a new generator with the requested Seed
func NewRandomArrayGenerator(seed uint64, mem memory.Allocator) RandomArrayGenerator {
	src := rand.NewSource(seed)
	return RandomArrayGenerator{seed, 0, src, rand.New(src), mem}
}

// GenerateBitmap generates a bitmap of n bits and stores it into buffer. Prob is the probability
// that a given bit will be zero, with 1-prob being the probability it will be 1. The return value
// is the number of bits that were left unset. The assumption being that buffer is currently
// zero initialized as this function does not clear any bits, it only sets 1s.
func (r *RandomArrayGenerator) GenerateBitmap(buffer []byte, n int64, prob float64) int64 {
	count := int64(0)
	r.extra++

	// bernoulli distribution uses P to determine the probabitiliy of a 0 or a 1,
	// which we'll use to generate the bitmap.
	dist := distuv.Bernoulli{P: 1 - prob, Src: rand.NewSource(r.seed + r.extra)}
	for i := 0; int64(i) < n; i++ {
		if dist.Rand() != float64(0.0) {
			bitutil.SetBit(buffer, i)
		} else {
			count++
		}
	}

	return count
}

func (r *RandomArrayGenerator) randomBitmap(size int64, prob float64) *bitmap.Bitmap {
	buf := memory.NewResizableBuffer(r.mem)
	defer buf.Release()
	buf.Resize(int(bitutil.BytesForBits(size)))
	memory.Set(buf.Bytes(), 0)
	r.GenerateBitmap(buf.Bytes(), size, prob)
	return bitmap.New(buf, 0, int(size))
}

// Validity returns a validity bitmap where each slot is null with
// probability nullProb, or nil when nullProb is zero.
func (r *RandomArrayGenerator) Validity(size int64, nullProb float64) *bitmap.Bitmap {
	if nullProb == 0 {
		return nil
	}
	return r.randomBitmap(size, nullProb)
}

func (r *RandomArrayGenerator) Boolean(size int64, prob, nullProb float64) *array.Boolean {
	values := r.randomBitmap(size, prob)
	defer values.Release()
	validity := r.Validity(size, nullProb)
	if validity != nil {
		defer validity.Release()
	}
	return array.NewBoolean(values, validity)
}

// FixedSizeBinary returns size random values of width bytes each.
func (r *RandomArrayGenerator) FixedSizeBinary(size int64, width int, nullProb float64) *array.FixedSizeBinary {
	r.extra++
	dist := rand.New(rand.NewSource(r.seed + r.extra))
	values, _ := buffer.FromTrustedLen(r.mem, int(size)*width, func(int) (byte, error) {
		return byte(dist.Intn(256)), nil
	})
	defer values.Release()
	validity := r.Validity(size, nullProb)
	if validity != nil {
		defer validity.Release()
	}
	return array.NewFixedSizeBinary(&arrow.FixedSizeBinaryType{ByteWidth: width}, int(size), values, validity)
}

// Integers returns size random values of dt uniformly drawn from [min, max].
func Integers[T constraints.Integer](r *RandomArrayGenerator, dt arrow.DataType, size int64, min, max T, nullProb float64) *array.Primitive[T] {
	r.extra++
	dist := rand.New(rand.NewSource(r.seed + r.extra))
	span := uint64(max) - uint64(min) + 1
	values, _ := buffer.FromTrustedLen(r.mem, int(size), func(int) (T, error) {
		if span == 0 {
			return T(dist.Uint64()), nil
		}
		return min + T(dist.Uint64n(span)), nil
	})
	defer values.Release()
	validity := r.Validity(size, nullProb)
	if validity != nil {
		defer validity.Release()
	}
	return array.NewPrimitive(dt, values, validity)
}

// Floats returns size random values of dt uniformly drawn from [min, max).
func Floats[T constraints.Float](r *RandomArrayGenerator, dt arrow.DataType, size int64, min, max T, nullProb float64) *array.Primitive[T] {
	r.extra++
	dist := distuv.Uniform{Min: float64(min), Max: float64(max), Src: rand.NewSource(r.seed + r.extra)}
	values, _ := buffer.FromTrustedLen(r.mem, int(size), func(int) (T, error) {
		return T(dist.Rand()), nil
	})
	defer values.Release()
	validity := r.Validity(size, nullProb)
	if validity != nil {
		defer validity.Release()
	}
	return array.NewPrimitive(dt, values, validity)
}
