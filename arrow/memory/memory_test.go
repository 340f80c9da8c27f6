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

package memory_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	for _, sz := range []int{0, 7, 25, 4096, 16384} {
		for _, span := range [][2]int{{0, sz}, {sz / 3, sz / 2}, {sz - 1, sz}} {
			lo, hi := span[0], span[1]
			if lo < 0 {
				continue
			}
			buf := make([]byte, sz)
			memory.Set(buf[lo:hi], 0x1f)

			exp := make([]byte, sz)
			copy(exp[lo:hi], bytes.Repeat([]byte{0x1f}, hi-lo))
			assert.Equal(t, exp, buf, "sz=%d lo=%d hi=%d", sz, lo, hi)
		}
	}
}

func TestCheckedAllocatorTracksLiveAllocations(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	b := mem.Allocate(100)
	assert.Len(t, mem.Leaks(), 1)
	b = mem.Reallocate(180, b)
	assert.Equal(t, 180, mem.CurrentAlloc())
	leaks := mem.Leaks()
	assert.Len(t, leaks, 1)
	assert.Contains(t, leaks[0], "LEAK of 180 bytes")

	empty := mem.Allocate(0)
	assert.Len(t, mem.Leaks(), 1)
	mem.Free(empty)

	mem.Free(b)
	assert.Empty(t, mem.Leaks())
}

type recordingT struct{ errs []string }

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}
func (r *recordingT) Helper() {}

func TestCheckedAllocatorAssertSizeReportsLeaks(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	b := mem.Allocate(64)

	var rec recordingT
	mem.AssertSize(&rec, 0)
	require.Len(t, rec.errs, 2)
	assert.Contains(t, rec.errs[0], "LEAK of 64 bytes")
	assert.Equal(t, "invalid memory size exp=0, got=64", rec.errs[1])

	rec.errs = nil
	mem.AssertSize(&rec, 64)
	assert.Empty(t, rec.errs)

	mem.Free(b)
	mem.AssertSize(t, 0)
}

func BenchmarkSet(b *testing.B) {
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		memory.Set(buf, 0x1f)
	}
}
