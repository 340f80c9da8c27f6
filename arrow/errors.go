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

package arrow

import "errors"

var (
	// ErrKeyOverflow is returned when an index is outside of the range of
	// the array it addresses, or cannot be represented as an offset on this
	// platform.
	ErrKeyOverflow = errors.New("key overflow")
	// ErrInvalidArgument is returned when a value does not have the shape a
	// builder or kernel requires.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrType is returned when a function receives an array of the wrong type.
	ErrType = errors.New("type error")
	// ErrNotImplemented is returned when no kernel exists for a type.
	ErrNotImplemented = errors.New("not implemented")
)
