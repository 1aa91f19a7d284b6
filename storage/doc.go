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


// Package storage provides the storage abstraction layer for roadmapper.
//
// This package defines the vector index interfaces that decouple the
// retrieval code from a particular index implementation. BadgerDB and
// chromem-go backends live in subpackages and can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interfaces:
//
//	repo, err := badger.NewResourceRepository(backend) // storage.ResourceRepository
//	idx, err := chromem.NewIndex(path, false)           // storage.Index
//
// # Architecture
//
//   - VectorSearcher: nearest-neighbour search with a similarity floor
//   - Index: VectorSearcher plus insertion and counting
//   - ResourceRepository: Index plus keyed access used by re-embedding
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
