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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidResource indicates an IndexedResource failed validation.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrInvalidTopic indicates a TopicNode failed validation.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyTopicID indicates a topic node has no ID.
	ErrEmptyTopicID = errors.New("topic id cannot be empty")

	// ErrDuplicateTopicID indicates two topic nodes share an ID.
	ErrDuplicateTopicID = errors.New("duplicate topic id")

	// ErrUnknownPrerequisite indicates a prerequisite references a missing node.
	ErrUnknownPrerequisite = errors.New("unknown prerequisite")

	// ErrPrerequisiteCycle indicates the prerequisite graph is not acyclic.
	ErrPrerequisiteCycle = errors.New("prerequisite cycle")
)
