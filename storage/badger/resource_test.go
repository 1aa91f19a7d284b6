package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddResources(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	t.Run("assigns content id and timestamps", func(t *testing.T) {
		res := &core.IndexedResource{Title: "Go Tour", URL: "https://go.dev/tour", Vector: []float32{1, 0}}
		require.NoError(t, repo.AddResources(ctx, res))

		assert.Equal(t, core.IDFromContent("https://go.dev/tour"), res.Id)
		assert.False(t, res.InsertedAt.IsZero())
		assert.False(t, res.UpdatedAt.IsZero())

		got, err := repo.GetResource(ctx, res.Id)
		require.NoError(t, err)
		assert.Equal(t, "Go Tour", got.Title)
		assert.Equal(t, []float32{1, 0}, got.Vector)
		assert.True(t, got.InsertedAt.Equal(res.InsertedAt))
		assert.True(t, got.UpdatedAt.Equal(res.UpdatedAt))
	})

	t.Run("stores caller timestamps at stored precision", func(t *testing.T) {
		inserted := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.FixedZone("CET", 3600))
		res := &core.IndexedResource{Title: "Effective Go", URL: "https://go.dev/doc/effective_go", Vector: []float32{0, 1}, InsertedAt: inserted}
		require.NoError(t, repo.AddResources(ctx, res))

		got, err := repo.GetResource(ctx, res.Id)
		require.NoError(t, err)
		assert.True(t, got.InsertedAt.Equal(res.InsertedAt))
		assert.True(t, got.InsertedAt.Equal(inserted.Truncate(time.Microsecond)))
	})

	t.Run("rejects resources without vectors", func(t *testing.T) {
		err := repo.AddResources(ctx, &core.IndexedResource{Title: "No vector"})
		assert.ErrorIs(t, err, storage.ErrMissingVector)
	})

	t.Run("replaces existing id", func(t *testing.T) {
		res := &core.IndexedResource{Id: 99, Title: "v1", URL: "https://old.example", Vector: []float32{1}}
		require.NoError(t, repo.AddResources(ctx, res))
		res2 := &core.IndexedResource{Id: 99, Title: "v2", URL: "https://new.example", Vector: []float32{1}}
		require.NoError(t, repo.AddResources(ctx, res2))

		got, err := repo.GetResource(ctx, 99)
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Title)

		_, err = repo.GetResourceByURL(ctx, "https://old.example")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetResourceByURL(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	res := &core.IndexedResource{Title: "Effective Go", URL: "https://go.dev/doc/effective_go", Vector: []float32{0.5}}
	require.NoError(t, repo.AddResources(ctx, res))

	got, err := repo.GetResourceByURL(ctx, res.URL)
	require.NoError(t, err)
	assert.Equal(t, res.Id, got.Id)

	_, err = repo.GetResourceByURL(ctx, "https://missing.example")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateResources(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	res := &core.IndexedResource{Title: "Old", URL: "https://a.example", Vector: []float32{1, 0}}
	require.NoError(t, repo.AddResources(ctx, res))
	inserted := res.InsertedAt

	updated := &core.IndexedResource{Id: res.Id, Title: "New", URL: "https://b.example", Vector: []float32{0, 1}}
	require.NoError(t, repo.UpdateResources(ctx, updated))

	got, err := repo.GetResource(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, []float32{0, 1}, got.Vector)
	assert.True(t, got.InsertedAt.Equal(inserted))
	assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
	assert.True(t, got.InsertedAt.Equal(updated.InsertedAt))

	_, err = repo.GetResourceByURL(ctx, "https://a.example")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	byURL, err := repo.GetResourceByURL(ctx, "https://b.example")
	require.NoError(t, err)
	assert.Equal(t, res.Id, byURL.Id)

	err = repo.UpdateResources(ctx, &core.IndexedResource{Id: 12345, Title: "ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteResources(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	res := &core.IndexedResource{Title: "Doomed", URL: "https://doomed.example", Vector: []float32{1}}
	require.NoError(t, repo.AddResources(ctx, res))

	require.NoError(t, repo.DeleteResources(ctx, res.Id))

	_, err = repo.GetResource(ctx, res.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.GetResourceByURL(ctx, res.URL)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteResources(ctx, res.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetResources_SkipsMissing(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	a := &core.IndexedResource{Title: "A", URL: "https://a.example", Vector: []float32{1}}
	require.NoError(t, repo.AddResources(ctx, a))

	got, err := repo.GetResources(ctx, a.Id, core.ID(424242))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}

func TestListResourceIDsAndCount(t *testing.T) {
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	for _, id := range []core.ID{5, 1, 3, 9} {
		require.NoError(t, repo.AddResources(ctx, &core.IndexedResource{Id: id, Title: id.String(), Vector: []float32{1}}))
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	page, err := repo.ListResourceIDs(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 3}, page)

	page, err = repo.ListResourceIDs(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{5, 9}, page)

	page, err = repo.ListResourceIDs(ctx, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = repo.ListResourceIDs(ctx, 0, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}
