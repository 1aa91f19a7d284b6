package storage

import (
	"context"

	"github.com/poiesic/roadmapper/core"
)

// VectorSearcher performs nearest-neighbour search over indexed resources.
type VectorSearcher interface {
	// FindSimilar returns resources whose similarity to vector is at least
	// minSimilarity, up to limit results, ordered by score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// Index is a vector index that resources can be written to.
// Implementations must be thread-safe and support concurrent access.
type Index interface {
	VectorSearcher

	// AddResources stores resources. Resources must carry a vector.
	// Existing resources with the same ID are replaced.
	// Sets InsertedAt if not already set.
	AddResources(ctx context.Context, resources ...*core.IndexedResource) error

	// Count returns the number of indexed resources.
	Count(ctx context.Context) (int, error)

	// Close closes the index and releases resources.
	Close() error
}

// ResourceRepository adds keyed access to an Index.
type ResourceRepository interface {
	Index

	// UpdateResources updates existing resources.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any resource doesn't exist.
	UpdateResources(ctx context.Context, resources ...*core.IndexedResource) error

	// DeleteResources removes resources by their IDs.
	// Returns ErrNotFound if any resource doesn't exist.
	DeleteResources(ctx context.Context, ids ...core.ID) error

	// GetResource retrieves a single resource by ID.
	// Returns ErrNotFound if the resource doesn't exist.
	GetResource(ctx context.Context, id core.ID) (*core.IndexedResource, error)

	// GetResources retrieves multiple resources by their IDs.
	// Returns only the resources that exist (no error for missing resources).
	GetResources(ctx context.Context, ids ...core.ID) ([]*core.IndexedResource, error)

	// GetResourceByURL retrieves a resource by its URL.
	// Returns ErrNotFound if no resource has that URL.
	GetResourceByURL(ctx context.Context, url string) (*core.IndexedResource, error)

	// ListResourceIDs returns up to limit resource IDs greater than after,
	// in ascending order. Pass 0 to start from the beginning.
	ListResourceIDs(ctx context.Context, after core.ID, limit int) ([]core.ID, error)
}
