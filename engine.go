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

package roadmapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/ai/gemini"
	"github.com/poiesic/roadmapper/ai/openai"
	"github.com/poiesic/roadmapper/config"
	"github.com/poiesic/roadmapper/ingestion"
	"github.com/poiesic/roadmapper/reembed"
	"github.com/poiesic/roadmapper/roadmap"
	"github.com/poiesic/roadmapper/search"
	"github.com/poiesic/roadmapper/storage"
	"github.com/poiesic/roadmapper/storage/badger"
	"github.com/poiesic/roadmapper/storage/chromem"
	"github.com/poiesic/roadmapper/websearch"
)

const warmUpProbe = "roadmapper warm-up"

// Engine holds the long-lived collaborators of the retrieval stack.
type Engine struct {
	config   *config.Config
	index    storage.Index
	provider ai.AIProvider
	web      websearch.Provider
	logger   *slog.Logger

	ownsIndex    bool
	ownsProvider bool
	closed       bool
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	index    storage.Index
	provider ai.AIProvider
	web      websearch.Provider
	webSet   bool
	logger   *slog.Logger
}

// WithIndex uses index instead of opening the configured store.
// The caller keeps ownership of it.
func WithIndex(index storage.Index) Option {
	return func(o *engineOptions) {
		o.index = index
	}
}

// WithAIProvider uses provider instead of building the configured backend.
// The caller keeps ownership of it.
func WithAIProvider(provider ai.AIProvider) Option {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithWebProvider uses provider for web fallback. A nil provider disables
// web search.
func WithWebProvider(provider websearch.Provider) Option {
	return func(o *engineOptions) {
		o.web = provider
		o.webSet = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// Open builds an engine from cfg. Collaborators not injected through options
// are constructed here, so configuration errors surface immediately.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		config: cfg,
		logger: logger.With("component", "engine"),
	}

	if options.index != nil {
		e.index = options.index
	} else {
		index, err := openIndex(cfg.Store)
		if err != nil {
			return nil, err
		}
		e.index = index
		e.ownsIndex = true
	}

	if options.provider != nil {
		e.provider = options.provider
	} else {
		provider, err := openProvider(ctx, cfg.AIConfig())
		if err != nil {
			e.Close()
			return nil, err
		}
		e.provider = provider
		e.ownsProvider = true
	}

	if options.webSet {
		e.web = options.web
	} else {
		web, err := websearch.New(cfg.Web.Provider, cfg.Web.BraveAPIKey,
			websearch.WithUserAgent(cfg.Web.UserAgent),
			websearch.WithTimeout(cfg.Web.Timeout),
			websearch.WithMaxRetries(cfg.Web.MaxRetries),
			websearch.WithLogger(logger),
		)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.web = web
	}

	return e, nil
}

func openIndex(cfg config.StoreConfig) (storage.Index, error) {
	switch cfg.Backend {
	case config.StoreChromem:
		return chromem.NewIndex(cfg.Path, cfg.Compress)
	case config.StoreBadger, "":
		if cfg.Path == "" {
			return badger.NewMemoryRepository()
		}
		return badger.OpenRepository(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}

func openProvider(ctx context.Context, cfg *ai.Config) (ai.AIProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case ai.BackendGemini:
		return gemini.NewProvider(ctx, cfg)
	case ai.BackendOpenAI:
		return openai.NewProvider(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ai.ErrUnknownBackend, cfg.Backend)
	}
}

// WarmUp embeds a probe string and counts the index so that unreachable
// services fail here rather than during the first search.
func (e *Engine) WarmUp(ctx context.Context) error {
	if e.closed {
		return ErrEngineClosed
	}
	if _, err := e.provider.Embedder().EmbedText(ctx, warmUpProbe); err != nil {
		return fmt.Errorf("embedding service not ready: %w", err)
	}
	count, err := e.index.Count(ctx)
	if err != nil {
		return fmt.Errorf("vector index not ready: %w", err)
	}
	webName := "none"
	if e.web != nil {
		webName = e.web.Name()
	}
	e.logger.Info("engine ready", "resources", count, "web", webName)
	return nil
}

// Index returns the vector index.
func (e *Engine) Index() storage.Index {
	return e.index
}

// Provider returns the AI provider.
func (e *Engine) Provider() ai.AIProvider {
	return e.provider
}

// NewFinder creates a resource finder from the search configuration.
// opts are applied after the configured ones. Call Release on the result.
func (e *Engine) NewFinder(opts ...search.Option) (*search.Finder, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	base := []search.Option{
		search.WithConfig(e.config.SearchConfig()),
		search.WithTextGenerator(e.provider.TextGenerator()),
		search.WithWebSearch(e.web),
		search.WithQueryExpansion(e.config.Search.QueryExpansion),
		search.WithLogger(e.logger.With("component", "search")),
	}
	return search.NewFinder(e.provider.Embedder(), e.index, append(base, opts...)...)
}

// NewAssembler creates a roadmap assembler that retrieves through finder.
// Call Release on the result.
func (e *Engine) NewAssembler(finder roadmap.ResourceFinder, opts ...roadmap.Option) (*roadmap.Assembler, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	base := []roadmap.Option{
		roadmap.WithResourcesPerTopic(e.config.Roadmap.ResourcesPerTopic),
	}
	if e.config.Roadmap.PoolSize > 0 {
		base = append(base, roadmap.WithPoolSize(e.config.Roadmap.PoolSize))
	}
	return roadmap.NewAssembler(e.provider.TopicPlanner(), finder, append(base, opts...)...)
}

// NewIngestionPipeline creates a pipeline that writes to the engine's index.
// Call Release on the result.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	base := []ingestion.Option{}
	if e.config.Ingestion.BatchSize > 0 {
		base = append(base, ingestion.WithBatchSize(e.config.Ingestion.BatchSize))
	}
	if e.config.Ingestion.PoolSize > 0 {
		base = append(base, ingestion.WithPoolSize(e.config.Ingestion.PoolSize))
	}
	return ingestion.NewPipeline(e.index, e.provider.Embedder(), append(base, opts...)...)
}

// NewReembedder creates a reembedder over the engine's index. Only indexes
// that can list and update their resources support it.
func (e *Engine) NewReembedder(progress io.Writer) (*reembed.Reembedder, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	repo, ok := e.index.(storage.ResourceRepository)
	if !ok {
		return nil, ErrReembedUnsupported
	}
	return reembed.NewReembedder(repo, e.provider.Embedder(), e.config.ReembedConfig(), progress)
}

// Close releases the collaborators the engine created itself.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	if e.ownsProvider && e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if e.ownsIndex && e.index != nil {
		if err := e.index.Close(); err != nil {
			e.logger.Error("error closing index", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
