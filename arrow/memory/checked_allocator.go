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

package memory

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Allocation sites are recorded this many frames above the allocator
// call, which is past memory.Buffer and the buffer builders. Override with
// ARROW_CHECKED_ALLOC_FRAMES and ARROW_CHECKED_REALLOC_FRAMES.
var (
	allocFrames   = framesFromEnv("ARROW_CHECKED_ALLOC_FRAMES", 4)
	reallocFrames = framesFromEnv("ARROW_CHECKED_REALLOC_FRAMES", 3)
)

func framesFromEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// CheckedAllocator wraps another allocator and remembers where every live
// allocation came from, so a test can fail with the leaking call sites.
type CheckedAllocator struct {
	mem Allocator
	sz  int64

	live sync.Map // address -> site
}

// site is the caller that requested a live allocation.
type site struct {
	fn   string
	line int
	size int
}

func (s site) String() string {
	return fmt.Sprintf("LEAK of %d bytes FROM %s line %d", s.size, s.fn, s.line)
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

// CurrentAlloc returns the number of bytes currently allocated.
func (a *CheckedAllocator) CurrentAlloc() int { return int(atomic.LoadInt64(&a.sz)) }

func addr(b []byte) uintptr { return uintptr(unsafe.Pointer(unsafe.SliceData(b))) }

func (a *CheckedAllocator) track(b []byte, skip int) {
	if len(b) == 0 {
		return
	}
	s := site{fn: "unknown", size: len(b)}
	if pc, _, line, ok := runtime.Caller(skip); ok {
		s.line = line
		if f := runtime.FuncForPC(pc); f != nil {
			s.fn = f.Name()
		}
	}
	a.live.Store(addr(b), s)
}

func (a *CheckedAllocator) untrack(b []byte) {
	if len(b) != 0 {
		a.live.Delete(addr(b))
	}
}

func (a *CheckedAllocator) Allocate(size int) []byte {
	atomic.AddInt64(&a.sz, int64(size))
	out := a.mem.Allocate(size)
	a.track(out, allocFrames)
	return out
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	atomic.AddInt64(&a.sz, int64(size-len(b)))
	a.untrack(b)
	out := a.mem.Reallocate(size, b)
	a.track(out, reallocFrames)
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.sz, -int64(len(b)))
	a.untrack(b)
	a.mem.Free(b)
}

// TestingT is the subset of testing.TB used by AssertSize.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// Leaks returns one line per live allocation, sorted.
func (a *CheckedAllocator) Leaks() []string {
	var out []string
	a.live.Range(func(_, v interface{}) bool {
		out = append(out, v.(site).String())
		return true
	})
	sort.Strings(out)
	return out
}

// AssertSize fails t when the number of outstanding bytes is not sz,
// reporting the call site of every allocation still alive.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	t.Helper()
	if cur := a.CurrentAlloc(); cur != sz {
		for _, l := range a.Leaks() {
			t.Errorf("%s", l)
		}
		t.Errorf("invalid memory size exp=%d, got=%d", sz, cur)
	}
}

var (
	_ Allocator = (*CheckedAllocator)(nil)
)
