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

package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of resources to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of resources)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("reembed config: BatchSize must be at least 1, got %d", c.BatchSize)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("reembed config: %w", ErrInvalidMaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("reembed config: RetryDelay must not be negative")
	}
	return nil
}

// Result summarizes a completed run.
type Result struct {
	Processed int
	Elapsed   time.Duration
}

// Reembedder orchestrates the reembedding of every stored resource.
type Reembedder struct {
	repo      storage.ResourceRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ResourceIterator
	logger    *slog.Logger
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr); nil discards it.
func NewReembedder(repo storage.ResourceRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewResourceIterator(repo, config.BatchSize),
		logger:    slog.Default().With("component", "reembed"),
	}, nil
}

// Run re-embeds every stored resource. It stops at the first batch that
// still fails after its retries.
func (r *Reembedder) Run(ctx context.Context) (Result, error) {
	total, err := r.repo.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count resources: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No resources found in index (0 resources)\n")
		return Result{}, nil
	}

	r.logger.Info("starting reembedding", "resources", total, "batchSize", r.config.BatchSize)
	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(page []*core.IndexedResource) error {
		if err := r.processor.Process(ctx, page); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		processed += len(page)
		tracker.Add(len(page))
		return nil
	})
	if err != nil {
		return Result{Processed: processed, Elapsed: tracker.Elapsed()}, err
	}

	tracker.Finish()
	res := Result{Processed: processed, Elapsed: tracker.Elapsed()}
	r.logger.Info("reembedding complete", "resources", processed, "elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}
