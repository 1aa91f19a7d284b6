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

package eval

import (
	"fmt"
	"math"
	"sort"
)

// Relevance maps an item id to a positive relevance grade.
// Absent ids have grade 0.
type Relevance map[string]float64

// BinaryRelevance gives every listed id grade 1.
func BinaryRelevance(ids ...string) Relevance {
	rel := make(Relevance, len(ids))
	for _, id := range ids {
		if id != "" {
			rel[id] = 1
		}
	}
	return rel
}

// GradedRelevance copies grades, dropping zero grades and rejecting
// negative ones.
func GradedRelevance(grades map[string]float64) (Relevance, error) {
	rel := make(Relevance, len(grades))
	for id, g := range grades {
		if g < 0 || math.IsNaN(g) {
			return nil, fmt.Errorf("%w: %q has grade %v", ErrNegativeGrade, id, g)
		}
		if g > 0 && id != "" {
			rel[id] = g
		}
	}
	return rel, nil
}

// Grade returns the grade of id, 0 when unjudged.
func (r Relevance) Grade(id string) float64 {
	return r[id]
}

// Positives counts the ids with a grade above zero.
func (r Relevance) Positives() int {
	n := 0
	for _, g := range r {
		if g > 0 {
			n++
		}
	}
	return n
}

// RecallAtK is the fraction of relevant ids found in the first k retrieved
// ids. It is 0 when nothing is relevant or k < 1.
func RecallAtK(retrieved []string, rel Relevance, k int) float64 {
	total := rel.Positives()
	if total == 0 || k < 1 {
		return 0
	}
	found := make(map[string]struct{})
	for _, id := range topK(retrieved, k) {
		if rel.Grade(id) > 0 {
			found[id] = struct{}{}
		}
	}
	return float64(len(found)) / float64(total)
}

// NDCGAtK is the normalized discounted cumulative gain of the first k
// retrieved ids. A repeated id earns no gain after its first position. The
// ideal ranking is every positive grade sorted descending, cut or
// zero-padded to k. A zero ideal gain yields 0.
func NDCGAtK(retrieved []string, rel Relevance, k int) float64 {
	if k < 1 {
		return 0
	}
	gains := make([]float64, k)
	seen := make(map[string]struct{}, k)
	for i, id := range topK(retrieved, k) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		gains[i] = rel.Grade(id)
	}

	ideal := make([]float64, 0, len(rel))
	for _, g := range rel {
		if g > 0 {
			ideal = append(ideal, g)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	padded := make([]float64, k)
	copy(padded, ideal)

	idcg := dcg(padded)
	if idcg == 0 {
		return 0
	}
	return dcg(gains) / idcg
}

func dcg(gains []float64) float64 {
	sum := 0.0
	for i, g := range gains {
		sum += g / math.Log2(float64(i+2))
	}
	return sum
}

func topK(ids []string, k int) []string {
	if len(ids) > k {
		return ids[:k]
	}
	return ids
}
