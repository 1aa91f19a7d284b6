package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// embeddingProcessor embeds batches of resources and writes them to an index.
type embeddingProcessor struct {
	index    storage.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(index storage.Index, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		index:    index,
		embedder: embedder,
		logger:   logger.With("processor", "embeddings"),
	}, nil
}

// process embeds one batch and stores it.
func (ep *embeddingProcessor) process(ctx context.Context, batch []*core.IndexedResource) error {
	texts := make([]string, len(batch))
	for i, res := range batch {
		texts[i] = res.EmbeddingText()
	}

	ep.logger.Debug("generating embeddings for resources", "resources", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
	}

	for i := range embeddings {
		batch[i].Vector = core.NormalizeVector(embeddings[i])
	}

	return ep.index.AddResources(ctx, batch...)
}
