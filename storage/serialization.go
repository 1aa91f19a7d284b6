// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/poiesic/roadmapper/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// StoredTime returns t as it reads back from storage: UTC with microsecond
// precision.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Now returns the current time at stored precision.
func Now() time.Time {
	return StoredTime(time.Now())
}

// MarshalResource serializes an IndexedResource to bytes.
// Timestamps are stored as Unix microseconds.
func MarshalResource(r *core.IndexedResource) []byte {
	buf := make([]byte, core.IndexedResourceMUS.Size(*r))
	core.IndexedResourceMUS.Marshal(*r, buf)
	return buf
}

// UnmarshalResource deserializes an IndexedResource from bytes.
// Timestamps come back in UTC and an empty vector comes back nil.
func UnmarshalResource(data []byte) (*core.IndexedResource, error) {
	res, _, err := core.IndexedResourceMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: resource: %w", ErrSerializationFailed, err)
	}
	res.InsertedAt = res.InsertedAt.UTC()
	res.UpdatedAt = res.UpdatedAt.UTC()
	if len(res.Vector) == 0 {
		res.Vector = nil
	}
	return &res, nil
}
