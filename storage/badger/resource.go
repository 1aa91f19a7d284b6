package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// ResourceRepository implements storage.ResourceRepository for BadgerDB.
type ResourceRepository struct {
	backend     *Backend
	ownsBackend bool
}

var _ storage.ResourceRepository = (*ResourceRepository)(nil)

// NewResourceRepository creates a repository over an already opened backend.
// The caller remains responsible for closing the backend.
func NewResourceRepository(backend *Backend) (storage.ResourceRepository, error) {
	if backend == nil {
		return nil, errors.New("badger: backend is required")
	}
	return &ResourceRepository{backend: backend}, nil
}

// OpenRepository opens a BadgerDB database at path and returns a repository
// that closes the database when it is closed.
func OpenRepository(path string) (storage.ResourceRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ResourceRepository{backend: backend, ownsBackend: true}, nil
}

// Close releases resources. The backend is closed only if the repository opened it.
func (r *ResourceRepository) Close() error {
	if r.ownsBackend {
		return r.backend.Close()
	}
	return nil
}

// FindSimilar delegates to the backend.
func (r *ResourceRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AddResources stores resources, replacing any with the same ID.
func (r *ResourceRepository) AddResources(ctx context.Context, resources ...*core.IndexedResource) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := storage.Now()
		for _, res := range resources {
			if len(res.Vector) == 0 {
				return fmt.Errorf("%w: %q", storage.ErrMissingVector, res.Title)
			}
			if res.Id == 0 {
				res.Id = core.IDFromContent(res.ContentKey())
			}
			if res.InsertedAt.IsZero() {
				res.InsertedAt = now
			} else {
				res.InsertedAt = storage.StoredTime(res.InsertedAt)
			}
			res.UpdatedAt = now

			key := makeResourceKey(res.Id)
			old, err := readResource(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.URL != "" && old.URL != res.URL {
				if err := tx.Delete(makeResourceURLKey(old.URL)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalResource(res)); err != nil {
				return err
			}
			if res.URL != "" {
				if err := tx.Set(makeResourceURLKey(res.URL), storage.MarshalID(res.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// UpdateResources updates existing resources.
func (r *ResourceRepository) UpdateResources(ctx context.Context, resources ...*core.IndexedResource) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, res := range resources {
			key := makeResourceKey(res.Id)

			old, err := readResource(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: resource %d", storage.ErrNotFound, res.Id)
			}

			res.InsertedAt = old.InsertedAt
			res.UpdatedAt = storage.Now()

			if err := tx.Set(key, storage.MarshalResource(res)); err != nil {
				return err
			}

			if old.URL != res.URL {
				if old.URL != "" {
					if err := tx.Delete(makeResourceURLKey(old.URL)); err != nil {
						return err
					}
				}
				if res.URL != "" {
					if err := tx.Set(makeResourceURLKey(res.URL), storage.MarshalID(res.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteResources removes resources by their IDs.
func (r *ResourceRepository) DeleteResources(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeResourceKey(id)

			res, err := readResource(tx, key)
			if err != nil {
				return err
			}
			if res == nil {
				return fmt.Errorf("%w: resource %d", storage.ErrNotFound, id)
			}

			if res.URL != "" {
				if err := tx.Delete(makeResourceURLKey(res.URL)); err != nil {
					return err
				}
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetResource retrieves a single resource by ID.
func (r *ResourceRepository) GetResource(ctx context.Context, id core.ID) (*core.IndexedResource, error) {
	var result *core.IndexedResource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readResource(tx, makeResourceKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetResources retrieves multiple resources by their IDs.
func (r *ResourceRepository) GetResources(ctx context.Context, ids ...core.ID) ([]*core.IndexedResource, error) {
	var result []*core.IndexedResource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			res, err := readResource(tx, makeResourceKey(id))
			if err != nil {
				return err
			}
			if res != nil {
				result = append(result, res)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetResourceByURL retrieves a resource through the URL index.
func (r *ResourceRepository) GetResourceByURL(ctx context.Context, url string) (*core.IndexedResource, error) {
	var result *core.IndexedResource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeResourceURLKey(url))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readResource(tx, makeResourceKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListResourceIDs returns up to limit IDs greater than after, in ascending order.
func (r *ResourceRepository) ListResourceIDs(ctx context.Context, after core.ID, limit int) ([]core.ID, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", storage.ErrInvalidQuery, limit)
	}

	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(resourcePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		start := makeResourceKey(0)
		if after != 0 {
			start = makeResourceKey(after + 1)
		}
		for iter.Seek(start); iter.Valid() && len(ids) < limit; iter.Next() {
			ids = append(ids, idFromResourceKey(iter.Item().Key()))
		}
		return nil
	}, false)
	return ids, err
}

// Count returns the number of stored resources.
func (r *ResourceRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(resourcePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readResource reads a resource from the transaction.
// Returns nil, nil when the key does not exist.
func readResource(tx *badger.Txn, key []byte) (*core.IndexedResource, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var res *core.IndexedResource
	err = item.Value(func(val []byte) error {
		var err error
		res, err = storage.UnmarshalResource(val)
		return err
	})
	return res, err
}
