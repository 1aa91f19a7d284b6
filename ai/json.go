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


package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/roadmapper/core"
)

// StripCodeFences removes a surrounding markdown code fence from model output.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// RepairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects.
func RepairJSON(s string) string {
	// Pattern: after { or , followed by optional whitespace, then a word followed by ":
	// Example: `, title":` -> `, "title":`
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+100)

	i := 0
	for i < len(result) {
		ch := result[i]

		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
			fixed = append(fixed, result[i])
			i++
		}

		if i < len(result) && result[i] != '"' && isLetter(result[i]) {
			keyStart := i
			for i < len(result) && (isLetter(result[i]) || result[i] == '_') {
				i++
			}
			if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
				// Closing quote is already present at result[i].
				fixed = append(fixed, '"')
			}
			fixed = append(fixed, result[keyStart:i]...)
		}
	}

	return string(fixed)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

type topicPlan struct {
	Nodes []core.TopicNode `json:"nodes"`
}

// ParseTopicNodes decodes a planner answer. Both {"nodes": [...]} and a bare
// array are accepted. At most maxTopics nodes are returned; nodes without
// a prerequisites list get an empty one.
func ParseTopicNodes(text string, maxTopics int) ([]core.TopicNode, error) {
	text = RepairJSON(StripCodeFences(text))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var nodes []core.TopicNode
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &nodes); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
	} else {
		var plan topicPlan
		if err := json.Unmarshal([]byte(text), &plan); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		nodes = plan.Nodes
	}

	if len(nodes) == 0 {
		return nil, ErrEmptyResponse
	}
	if maxTopics > 0 && len(nodes) > maxTopics {
		nodes = nodes[:maxTopics]
		nodes = dropDanglingPrerequisites(nodes)
	}
	for i := range nodes {
		if nodes[i].Prerequisites == nil {
			nodes[i].Prerequisites = []string{}
		}
	}
	return nodes, nil
}

// dropDanglingPrerequisites removes references to nodes cut by the topic cap.
func dropDanglingPrerequisites(nodes []core.TopicNode) []core.TopicNode {
	kept := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		kept[n.ID] = true
	}
	for i, n := range nodes {
		prereqs := n.Prerequisites[:0:0]
		for _, p := range n.Prerequisites {
			if kept[p] {
				prereqs = append(prereqs, p)
			}
		}
		nodes[i].Prerequisites = prereqs
	}
	return nodes
}
