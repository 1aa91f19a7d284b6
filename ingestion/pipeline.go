package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// DefaultBatchSize is the number of resources embedded per request.
const DefaultBatchSize = 100

// Stats summarizes one Ingest call.
type Stats struct {
	Indexed int // Resources written to the index
	Skipped int // Invalid rows and repeated URLs
	Failed  int // Resources in batches that failed to embed or store
}

// Pipeline indexes corpus records into a vector index.
type Pipeline struct {
	embeddingPool *ants.Pool
	embeddingProc *embeddingProcessor
	batchSize     int
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithBatchSize sets how many resources are embedded per request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(index storage.Index, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		embeddingPool: embeddingPool,
		batchSize:     DefaultBatchSize,
		logger:        slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processor after options are applied (so it gets the final logger)
	embeddingProc, err := newEmbeddingProcessor(index, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc
	p.logger = p.logger.With("component", "ingestion")

	return p, nil
}

// Ingest cleans, validates, embeds and stores records. Invalid rows and
// rows whose URL was already seen in this call are skipped. Batches run
// concurrently; their errors are joined and returned together with the
// stats.
func (p *Pipeline) Ingest(ctx context.Context, records []Record) (Stats, error) {
	var stats Stats

	resources := make([]*core.IndexedResource, 0, len(records))
	seenURLs := make(map[string]struct{}, len(records))
	for i, rec := range records {
		res := rec.toResource()
		if err := core.ValidateIndexedResource(res); err != nil {
			p.logger.Debug("skipping invalid record", "row", i, "err", err)
			stats.Skipped++
			continue
		}
		if res.URL != "" {
			if _, dup := seenURLs[res.URL]; dup {
				stats.Skipped++
				continue
			}
			seenURLs[res.URL] = struct{}{}
		}
		resources = append(resources, res)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for start := 0; start < len(resources); start += p.batchSize {
		batch := resources[start:min(start+p.batchSize, len(resources))]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			err := p.embeddingProc.process(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed += len(batch)
				errs = append(errs, fmt.Errorf("batch at %d: %w", start, err))
				return
			}
			stats.Indexed += len(batch)
		}
		if err := p.embeddingPool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	p.logger.Info("ingestion finished", "indexed", stats.Indexed, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, errors.Join(errs...)
}

// IngestFile loads a corpus file and ingests it.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (Stats, error) {
	records, err := LoadCorpus(path)
	if err != nil {
		return Stats{}, err
	}
	return p.Ingest(ctx, records)
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
