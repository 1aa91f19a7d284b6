package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
	"github.com/poiesic/roadmapper/websearch"
)

// Finder is the public entry point for resource retrieval.
type Finder struct {
	embedder  ai.Embedder
	index     storage.VectorSearcher
	generator ai.TextGenerator
	web       websearch.Provider
	config    *Config
	expand    bool
	monitor   SearchMonitor
	logger    *slog.Logger

	merger   *Merger
	fallback *Fallback
}

// Option configures a Finder.
type Option func(*Finder) error

// WithConfig replaces the default retrieval configuration.
// The configuration is validated when the Finder is built.
func WithConfig(config *Config) Option {
	return func(f *Finder) error {
		if config != nil {
			f.config = config
		}
		return nil
	}
}

// WithTextGenerator sets the generator used for query expansion.
// Without one, every search uses only the original query.
func WithTextGenerator(generator ai.TextGenerator) Option {
	return func(f *Finder) error {
		f.generator = generator
		return nil
	}
}

// WithWebSearch sets the web search provider used to top up short results.
func WithWebSearch(provider websearch.Provider) Option {
	return func(f *Finder) error {
		f.web = provider
		return nil
	}
}

// WithQueryExpansion switches query expansion on or off. Default is on.
func WithQueryExpansion(enabled bool) Option {
	return func(f *Finder) error {
		f.expand = enabled
		return nil
	}
}

// WithMonitor sets a monitor that observes every search.
func WithMonitor(monitor SearchMonitor) Option {
	return func(f *Finder) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		f.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFinder creates a new finder over a vector index.
func NewFinder(embedder ai.Embedder, index storage.VectorSearcher, opts ...Option) (*Finder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	f := &Finder{
		embedder: embedder,
		index:    index,
		config:   DefaultConfig(),
		expand:   true,
		monitor:  &noopMonitor{},
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	if err := f.config.Validate(); err != nil {
		return nil, err
	}

	generator := f.generator
	if !f.expand {
		generator = nil
	}
	expander := NewQueryExpander(generator, f.config.Variants, f.logger)

	merger, err := NewMerger(embedder, index, expander, f.config, f.logger)
	if err != nil {
		return nil, err
	}
	merger.monitor = f.monitor
	f.merger = merger
	f.fallback = NewFallback(f.web, f.config, f.logger)

	return f, nil
}

// Release frees the worker pool used for parallel variant searches.
func (f *Finder) Release() {
	f.merger.Release()
}

// FindResources returns up to limit resources for query: local hits by
// descending similarity, then web results in provider order, then at most one
// trailing search link. It fails only when limit is below 1.
func (f *Finder) FindResources(ctx context.Context, query string, limit int) ([]core.Resource, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	f.monitor.Start(query, limit)

	seen := make(map[string]struct{})
	local := f.merger.Retrieve(ctx, query, limit, seen)
	f.monitor.AfterMerge(local)

	results := f.fallback.TopUp(ctx, query, local, limit, seen)
	f.monitor.AfterFallback(results[len(local):])

	f.logger.Debug("resources found", "query", query, "local", len(local), "total", len(results))
	f.monitor.Finish(results)
	return results, nil
}
