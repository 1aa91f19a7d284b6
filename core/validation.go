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

import (
	"fmt"
	"time"
)

// ValidateIndexedResource validates an IndexedResource according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - InsertedAt must not be in the future
//
// NOT validated (populated during ingestion):
//   - Vector
//   - ID
func ValidateIndexedResource(res *IndexedResource) error {
	if res == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}

	if res.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrEmptyTitle)
	}

	if !IsValidTimestamp(res.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateTopicNodes validates a planned topic graph.
//
// Validation rules:
//   - every node has a non-empty, unique ID and a non-empty title
//   - every prerequisite references a node in the list
//   - prerequisites form no cycle
func ValidateTopicNodes(nodes []TopicNode) error {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d: %w", ErrInvalidTopic, i, ErrEmptyTopicID)
		}
		if n.Title == "" {
			return fmt.Errorf("%w: node %q: %w", ErrInvalidTopic, n.ID, ErrEmptyTitle)
		}
		if _, dup := index[n.ID]; dup {
			return fmt.Errorf("%w: %w: %q", ErrInvalidTopic, ErrDuplicateTopicID, n.ID)
		}
		index[n.ID] = i
	}

	for _, n := range nodes {
		for _, p := range n.Prerequisites {
			if _, ok := index[p]; !ok {
				return fmt.Errorf("%w: node %q: %w: %q", ErrInvalidTopic, n.ID, ErrUnknownPrerequisite, p)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(nodes))
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return fmt.Errorf("%w: %w at %q", ErrInvalidTopic, ErrPrerequisiteCycle, nodes[i].ID)
		case done:
			return nil
		}
		state[i] = visiting
		for _, p := range nodes[i].Prerequisites {
			if err := visit(index[p]); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}
	for i := range nodes {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
