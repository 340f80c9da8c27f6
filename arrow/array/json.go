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
	"bytes"
	"io"

	"github.com/apache/arrow-kernels/go/arrow"
	"github.com/apache/arrow-kernels/go/arrow/memory"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// FromJSON creates an array of type dt from a JSON array read from r.
// A JSON null is a null slot. Fixed-size binary values are base64
// strings, decimal values are integers or strings of digits and interval
// values are objects keyed by their field names.
func FromJSON(mem memory.Allocator, dt arrow.DataType, r io.Reader) (arrow.Array, error) {
	var elems []json.RawMessage
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&elems); err != nil {
		return nil, xerrors.Errorf("arrow/array: could not decode JSON array: %w", err)
	}

	bldr, err := newBuilder(mem, dt)
	if err != nil {
		return nil, err
	}
	defer bldr.Release()

	bldr.Reserve(len(elems))
	for i, raw := range elems {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			bldr.AppendNull()
			continue
		}
		if err := bldr.unmarshalOne(raw); err != nil {
			return nil, xerrors.Errorf("arrow/array: element %d is not a valid %s: %w", i, dt, err)
		}
	}
	return bldr.NewArray(), nil
}
