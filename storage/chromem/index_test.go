package chromem

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) storage.Index {
	t.Helper()
	idx, err := NewIndex("", false)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestFindSimilar_Empty(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.FindSimilar(context.Background(), []float32{1, 0}, 0.4, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_InvalidLimit(t *testing.T) {
	idx := newTestIndex(t)
	_, err := idx.FindSimilar(context.Background(), []float32{1, 0}, 0.4, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestAddAndFind(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	err := idx.AddResources(ctx,
		&core.IndexedResource{SourceID: "r1", Title: "Go Tour", URL: "https://go.dev/tour", Description: "Intro", ContentType: "tutorial", QualityScore: 0.9, Vector: []float32{1, 0, 0}},
		&core.IndexedResource{SourceID: "r2", Title: "Rust Book", URL: "https://doc.rust-lang.org/book", Vector: []float32{0, 1, 0}},
		&core.IndexedResource{SourceID: "r3", Title: "Go Concurrency", URL: "https://go.dev/blog/pipelines", Vector: []float32{0.9, 0.1, 0}},
	)
	require.NoError(t, err)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	t.Run("limit larger than collection is clamped", func(t *testing.T) {
		results, err := idx.FindSimilar(ctx, []float32{1, 0, 0}, -1, 50)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("floor filters and payload round-trips", func(t *testing.T) {
		results, err := idx.FindSimilar(ctx, []float32{1, 0, 0}, 0.4, 5)
		require.NoError(t, err)
		require.Len(t, results, 2)

		top := results[0]
		assert.Equal(t, "Go Tour", top.Resource.Title)
		assert.Equal(t, "https://go.dev/tour", top.Resource.URL)
		assert.Equal(t, "Intro", top.Resource.Description)
		assert.Equal(t, "tutorial", top.Resource.ContentType)
		assert.Equal(t, "r1", top.Resource.SourceID)
		assert.InDelta(t, 0.9, top.Resource.QualityScore, 1e-6)
		assert.Equal(t, core.IDFromContent("https://go.dev/tour"), top.Resource.Id)
		assert.InDelta(t, 1.0, top.Score, 1e-5)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	})

	t.Run("missing vector rejected", func(t *testing.T) {
		err := idx.AddResources(ctx, &core.IndexedResource{Title: "x"})
		assert.ErrorIs(t, err, storage.ErrMissingVector)
	})
}

func TestPersistentIndex(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := NewIndex(dir, false)
	require.NoError(t, err)
	require.NoError(t, idx.AddResources(ctx, &core.IndexedResource{Title: "Persisted", URL: "https://p.example", Vector: []float32{0, 1}}))
	require.NoError(t, idx.Close())

	reopened, err := NewIndex(dir, false)
	require.NoError(t, err)
	defer reopened.Close()

	results, err := reopened.FindSimilar(ctx, []float32{0, 1}, 0.5, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Persisted", results[0].Resource.Title)
}

func TestAddResources_TimestampRoundTrip(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	res := &core.IndexedResource{Title: "Go Tour", URL: "https://go.dev/tour", Vector: []float32{1, 0},
		InsertedAt: time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)}
	require.NoError(t, idx.AddResources(ctx, res))
	assert.Equal(t, 123456000, res.InsertedAt.Nanosecond())

	results, err := idx.FindSimilar(ctx, []float32{1, 0}, 0.4, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Resource.InsertedAt.Equal(res.InsertedAt))
}
