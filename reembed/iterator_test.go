package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
	"github.com/poiesic/roadmapper/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T, n int) storage.ResourceRepository {
	t.Helper()
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	resources := make([]*core.IndexedResource, n)
	for i := range resources {
		resources[i] = &core.IndexedResource{
			Title:  fmt.Sprintf("Resource %d", i),
			URL:    fmt.Sprintf("https://example.com/%d", i),
			Vector: []float32{1, 0, 0},
		}
	}
	if n > 0 {
		require.NoError(t, repo.AddResources(context.Background(), resources...))
	}
	return repo
}

func TestResourceIterator_Pages(t *testing.T) {
	repo := setupTestRepo(t, 5)

	iter := NewResourceIterator(repo, 2)
	var sizes []int
	var ids []core.ID
	err := iter.ForEach(context.Background(), func(page []*core.IndexedResource) error {
		sizes = append(sizes, len(page))
		for _, res := range page {
			ids = append(ids, res.Id)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, sizes)
	require.Len(t, ids, 5)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i], "pages should be in id order")
	}
}

func TestResourceIterator_ExactMultiple(t *testing.T) {
	repo := setupTestRepo(t, 4)

	calls := 0
	err := NewResourceIterator(repo, 2).ForEach(context.Background(), func(page []*core.IndexedResource) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestResourceIterator_Empty(t *testing.T) {
	repo := setupTestRepo(t, 0)

	called := false
	err := NewResourceIterator(repo, 0).ForEach(context.Background(), func(page []*core.IndexedResource) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestResourceIterator_CallbackError(t *testing.T) {
	repo := setupTestRepo(t, 3)

	boom := errors.New("boom")
	err := NewResourceIterator(repo, 1).ForEach(context.Background(), func(page []*core.IndexedResource) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestResourceIterator_ContextCanceled(t *testing.T) {
	repo := setupTestRepo(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := NewResourceIterator(repo, 1).ForEach(ctx, func(page []*core.IndexedResource) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
