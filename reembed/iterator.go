package reembed

import (
	"context"
	"fmt"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// DefaultBatchSize is the default number of resources fetched per page.
const DefaultBatchSize = 100

// ResourceIterator pages through every stored resource in id order.
type ResourceIterator struct {
	repo      storage.ResourceRepository
	batchSize int
}

// NewResourceIterator creates an iterator. A batch size of 0 or less uses
// DefaultBatchSize.
func NewResourceIterator(repo storage.ResourceRepository, batchSize int) *ResourceIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ResourceIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn with consecutive pages of resources until the repository
// is exhausted, fn fails or ctx ends. Only one page is held in memory.
func (it *ResourceIterator) ForEach(ctx context.Context, fn func([]*core.IndexedResource) error) error {
	var after core.ID
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ids, err := it.repo.ListResourceIDs(ctx, after, it.batchSize)
		if err != nil {
			return fmt.Errorf("failed to list resources after %d: %w", after, err)
		}
		if len(ids) == 0 {
			return nil
		}

		page, err := it.repo.GetResources(ctx, ids...)
		if err != nil {
			return fmt.Errorf("failed to load resources: %w", err)
		}
		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
		}

		after = ids[len(ids)-1]
		if len(ids) < it.batchSize {
			return nil
		}
	}
}
