package roadmapper

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/roadmapper/ai/mock"
	"github.com/poiesic/roadmapper/config"
	"github.com/poiesic/roadmapper/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Backend = backend
	cfg.Store.Path = ""
	cfg.Web.Provider = "none"
	return cfg
}

func openTestEngine(t *testing.T, backend string) *Engine {
	t.Helper()
	e, err := Open(context.Background(), testConfig(t, backend),
		WithAIProvider(mock.NewMockProvider()),
		WithWebProvider(nil),
	)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestOpen(t *testing.T) {
	t.Run("badger in memory", func(t *testing.T) {
		e := openTestEngine(t, config.StoreBadger)
		assert.NotNil(t, e.Index())
		assert.NotNil(t, e.Provider())
		assert.True(t, e.ownsIndex)
		assert.False(t, e.ownsProvider)
	})

	t.Run("chromem in memory", func(t *testing.T) {
		e := openTestEngine(t, config.StoreChromem)
		require.NoError(t, e.WarmUp(context.Background()))
	})

	t.Run("badger on disk", func(t *testing.T) {
		cfg := testConfig(t, config.StoreBadger)
		cfg.Store.Path = filepath.Join(t.TempDir(), "index")
		e, err := Open(context.Background(), cfg, WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NoError(t, e.Close())
	})

	t.Run("openai provider from config", func(t *testing.T) {
		e, err := Open(context.Background(), testConfig(t, config.StoreBadger))
		require.NoError(t, err)
		assert.True(t, e.ownsProvider)
		require.NoError(t, e.Close())
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := Open(context.Background(), nil)
		assert.ErrorIs(t, err, ErrConfigRequired)
	})

	t.Run("unknown store", func(t *testing.T) {
		_, err := Open(context.Background(), testConfig(t, "qdrant"), WithAIProvider(mock.NewMockProvider()))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("invalid path", func(t *testing.T) {
		cfg := testConfig(t, config.StoreBadger)
		file := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(file, []byte("test"), 0o644))
		cfg.Store.Path = file
		_, err := Open(context.Background(), cfg, WithAIProvider(mock.NewMockProvider()))
		assert.Error(t, err)
	})
}

func TestEngine_WarmUp(t *testing.T) {
	e := openTestEngine(t, config.StoreBadger)
	require.NoError(t, e.WarmUp(context.Background()))

	emb := mock.NewMockEmbedder()
	emb.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}
	broken, err := Open(context.Background(), testConfig(t, config.StoreBadger),
		WithAIProvider(mock.NewMockProviderWithServices(emb, nil, nil)),
		WithWebProvider(nil),
	)
	require.NoError(t, err)
	defer broken.Close()
	assert.ErrorContains(t, broken.WarmUp(context.Background()), "connection refused")
}

func TestEngine_EndToEnd(t *testing.T) {
	e := openTestEngine(t, config.StoreBadger)
	ctx := context.Background()

	pipeline, err := e.NewIngestionPipeline(ingestion.WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	stats, err := pipeline.Ingest(ctx, []ingestion.Record{
		{ID: "go-tour", Title: "A Tour of Go", URL: "https://go.dev/tour", Description: "Interactive introduction", ContentType: "course"},
		{ID: "gobyex", Title: "Go by Example", URL: "https://gobyexample.com", Description: "Annotated programs"},
		{ID: "eff", Title: "Effective Go", URL: "https://go.dev/doc/effective_go", Description: "Idiomatic Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Indexed)

	finder, err := e.NewFinder()
	require.NoError(t, err)
	defer finder.Release()

	resources, err := finder.FindResources(ctx, "A Tour of Go: Interactive introduction", 2)
	require.NoError(t, err)
	require.NotEmpty(t, resources)
	assert.LessOrEqual(t, len(resources), 2)

	assembler, err := e.NewAssembler(finder)
	require.NoError(t, err)
	defer assembler.Release()

	rm, err := assembler.Generate(ctx, "Go")
	require.NoError(t, err)
	assert.Len(t, rm.Nodes, 3)
	for _, node := range rm.Nodes {
		assert.NotEmpty(t, node.Resources)
		assert.LessOrEqual(t, len(node.Resources), 3)
	}

	var progress bytes.Buffer
	r, err := e.NewReembedder(&progress)
	require.NoError(t, err)
	res, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
}

func TestEngine_ReembedUnsupported(t *testing.T) {
	e := openTestEngine(t, config.StoreChromem)
	_, err := e.NewReembedder(nil)
	assert.ErrorIs(t, err, ErrReembedUnsupported)
}

func TestEngine_Closed(t *testing.T) {
	e := openTestEngine(t, config.StoreBadger)
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, err := e.NewFinder()
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.ErrorIs(t, e.WarmUp(context.Background()), ErrEngineClosed)
}
