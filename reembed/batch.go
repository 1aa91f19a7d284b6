package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// BatchProcessor re-embeds one page of resources and writes it back.
type BatchProcessor struct {
	repo           storage.ResourceRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(repo storage.ResourceRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds each resource's EmbeddingText, normalizes the vectors and
// updates the resources in place.
func (bp *BatchProcessor) Process(ctx context.Context, resources []*core.IndexedResource) error {
	if len(resources) == 0 {
		return nil
	}

	texts := make([]string, len(resources))
	for i, res := range resources {
		texts[i] = res.EmbeddingText()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(resources) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(resources), len(embeddings))
	}

	for i := range resources {
		resources[i].Vector = core.NormalizeVector(embeddings[i])
	}

	if err := bp.repo.UpdateResources(ctx, resources...); err != nil {
		return fmt.Errorf("failed to update resources: %w", err)
	}
	return nil
}
