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
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/roadmapper/core"
)

// Retriever returns a ranked list of resources for a query.
// search.Finder satisfies it.
type Retriever interface {
	FindResources(ctx context.Context, query string, limit int) ([]core.Resource, error)
}

// CaseResult holds the scores of one case.
type CaseResult struct {
	Query     string   `json:"query" yaml:"query"`
	Retrieved []string `json:"retrieved" yaml:"retrieved"`
	Recall    float64  `json:"recall" yaml:"recall"`
	NDCG      float64  `json:"ndcg" yaml:"ndcg"`
}

// Report aggregates case results at a fixed cutoff.
type Report struct {
	K          int          `json:"k" yaml:"k"`
	Cases      []CaseResult `json:"cases" yaml:"cases"`
	MeanRecall float64      `json:"mean_recall" yaml:"mean_recall"`
	MeanNDCG   float64      `json:"mean_ndcg" yaml:"mean_ndcg"`
}

// Comparison is the difference between two reports over the same cases.
type Comparison struct {
	Baseline    *Report `json:"baseline" yaml:"baseline"`
	Candidate   *Report `json:"candidate" yaml:"candidate"`
	RecallDelta float64 `json:"recall_delta" yaml:"recall_delta"`
	NDCGDelta   float64 `json:"ndcg_delta" yaml:"ndcg_delta"`
}

// Harness runs evaluation cases through a retriever.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
	}
}

// NewHarness creates a harness.
func NewHarness(opts ...Option) *Harness {
	h := &Harness{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "eval")
	return h
}

// Run retrieves k resources per case and scores them. Retrieved items are
// identified by resource id, or by URL for items without one.
func (h *Harness) Run(ctx context.Context, retriever Retriever, cases []Case, k int) (*Report, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	report := &Report{K: k, Cases: make([]CaseResult, 0, len(cases))}
	for _, c := range cases {
		resources, err := retriever.FindResources(ctx, c.Query, k)
		if err != nil {
			return nil, fmt.Errorf("retrieval failed for %q: %w", c.Query, err)
		}

		ids := make([]string, 0, len(resources))
		for _, r := range resources {
			if r.IsSearchLink() {
				continue
			}
			ids = append(ids, resourceKey(r))
		}

		cr := CaseResult{
			Query:     c.Query,
			Retrieved: ids,
			Recall:    RecallAtK(ids, c.Relevant, k),
			NDCG:      NDCGAtK(ids, c.Relevant, k),
		}
		h.logger.Debug("case scored", "query", c.Query, "recall", cr.Recall, "ndcg", cr.NDCG)
		report.Cases = append(report.Cases, cr)
		report.MeanRecall += cr.Recall
		report.MeanNDCG += cr.NDCG
	}

	if n := len(report.Cases); n > 0 {
		report.MeanRecall /= float64(n)
		report.MeanNDCG /= float64(n)
	}
	h.logger.Info("evaluation finished", "cases", len(report.Cases), "k", k,
		"mean_recall", report.MeanRecall, "mean_ndcg", report.MeanNDCG)
	return report, nil
}

// Compare returns the change in mean scores from baseline to candidate.
func Compare(baseline, candidate *Report) *Comparison {
	return &Comparison{
		Baseline:    baseline,
		Candidate:   candidate,
		RecallDelta: candidate.MeanRecall - baseline.MeanRecall,
		NDCGDelta:   candidate.MeanNDCG - baseline.MeanNDCG,
	}
}

func resourceKey(r core.Resource) string {
	if r.ID != "" {
		return r.ID
	}
	return r.URL
}
