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

/*
Package arrow provides the type system and capability interfaces of a
columnar in-memory array format.

Arrays pair a region of fixed-width values with an optional bit-packed
validity mask. The array package provides the concrete arrays and their
builders, the buffer and bitmap packages provide the memory they are made
of, and the compute package provides kernels that read arrays and produce
new ones without mutating their inputs.

Memory is reference counted. Every constructor that returns an object with
a Release method hands the caller one reference; the caller must call
Release once it is done with it. Retain and Release may be called from
multiple goroutines.
*/
package arrow
