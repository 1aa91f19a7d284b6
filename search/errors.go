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

package search

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrInvalidLimit is returned when a caller asks for fewer than one result.
	ErrInvalidLimit = errors.New("limit must be at least 1")

	// ErrInvalidConfig is returned when a search configuration is rejected.
	ErrInvalidConfig = errors.New("invalid search config")

	// errVectorCount signals an embedder answer with the wrong number of vectors.
	errVectorCount = errors.New("embedder returned wrong number of vectors")
)
