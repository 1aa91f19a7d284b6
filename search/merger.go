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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// Merger runs one vector search per query variant and rank-merges the hits.
type Merger struct {
	embedder ai.Embedder
	index    storage.VectorSearcher
	expander *QueryExpander
	config   *Config
	pool     *ants.Pool // nil when searching sequentially
	monitor  SearchMonitor
	logger   *slog.Logger
}

// NewMerger creates a merger. A Parallelism above 1 starts an ants pool that
// Release frees.
func NewMerger(embedder ai.Embedder, index storage.VectorSearcher, expander *QueryExpander, config *Config, logger *slog.Logger) (*Merger, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Merger{
		embedder: embedder,
		index:    index,
		expander: expander,
		config:   config,
		monitor:  &noopMonitor{},
		logger:   logger.With("component", "merger"),
	}
	if config.Parallelism > 1 {
		pool, err := ants.NewPool(config.Parallelism)
		if err != nil {
			return nil, fmt.Errorf("failed to create search pool: %w", err)
		}
		m.pool = pool
	}
	return m, nil
}

// Release frees the worker pool, if any.
func (m *Merger) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}

// Retrieve returns up to limit local resources for query, best first.
// URLs already in seen are skipped and every emitted URL is added to it.
// A nil seen starts an empty set. Embedding or index failures yield an
// empty result.
func (m *Merger) Retrieve(ctx context.Context, query string, limit int, seen map[string]struct{}) []core.Resource {
	if seen == nil {
		seen = make(map[string]struct{})
	}
	variants := m.expander.Expand(ctx, query)
	m.monitor.AfterExpansion(variants)

	hits, err := m.search(ctx, variants, limit)
	if err != nil {
		m.logger.Error("local retrieval failed, continuing with zero local results", "query", query, "err", err)
		return []core.Resource{}
	}

	pooled := mergeHits(hits)

	out := make([]core.Resource, 0, min(limit, len(pooled)))
	for _, hit := range pooled {
		if len(out) >= limit {
			break
		}
		r := m.toResource(hit.Resource)
		if r.URL != "" {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// search embeds the variants in one batch and queries the index once per
// variant. Results are indexed by variant, so the order of completion does
// not matter.
func (m *Merger) search(ctx context.Context, variants []string, limit int) ([][]*core.SearchResult, error) {
	vectors, err := m.embedder.EmbedTexts(ctx, variants)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query variants: %w", err)
	}
	if len(vectors) != len(variants) {
		return nil, fmt.Errorf("%w: want %d, got %d", errVectorCount, len(variants), len(vectors))
	}

	hits := make([][]*core.SearchResult, len(variants))
	errs := make([]error, len(variants))
	run := func(i int) {
		hits[i], errs[i] = m.index.FindSimilar(ctx, vectors[i], m.config.ScoreFloor, limit)
	}

	if m.pool == nil || len(variants) == 1 {
		for i := range variants {
			run(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := range variants {
			wg.Add(1)
			if err := m.pool.Submit(func() {
				defer wg.Done()
				run(i)
			}); err != nil {
				// Pool closed or overloaded; search inline.
				run(i)
				wg.Done()
			}
		}
		wg.Wait()
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	for i, v := range variants {
		m.monitor.AfterVariantSearch(v, hits[i])
	}
	return hits, nil
}

// mergeHits pools the per-variant hits, keeps the best score for each
// storage id and sorts by score descending. Ties keep variant order, then
// rank order.
func mergeHits(hits [][]*core.SearchResult) []*core.SearchResult {
	best := make(map[core.ID]int)
	pooled := make([]*core.SearchResult, 0)
	for _, list := range hits {
		for _, hit := range list {
			if hit == nil || hit.Resource == nil {
				continue
			}
			if i, ok := best[hit.Resource.Id]; ok {
				if hit.Score > pooled[i].Score {
					pooled[i] = hit
				}
				continue
			}
			best[hit.Resource.Id] = len(pooled)
			pooled = append(pooled, hit)
		}
	}
	sort.SliceStable(pooled, func(i, j int) bool {
		return pooled[i].Score > pooled[j].Score
	})
	return pooled
}

func (m *Merger) toResource(r *core.IndexedResource) core.Resource {
	title := r.Title
	if title == "" {
		title = "Unknown"
	}
	kind := r.ContentType
	if kind == "" {
		kind = core.TypeResource
	}
	return core.Resource{
		ID:          r.PublicID(),
		Title:       title,
		URL:         r.URL,
		Description: m.config.truncate(r.Description),
		Type:        kind,
	}
}
