package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/roadmapper/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReembedder_Run(t *testing.T) {
	repo := setupTestRepo(t, 10)
	ctx := context.Background()

	var buf bytes.Buffer
	config := &Config{
		BatchSize:      3,
		ReportInterval: 3,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
	}
	r, err := NewReembedder(repo, unnormalizedEmbedder(), config, &buf)
	require.NoError(t, err)

	res, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Processed)

	for _, stored := range loadAll(t, ctx, NewResourceIterator(repo, 100)) {
		assert.InDeltaSlice(t, []float32{1.0 / 3, 2.0 / 3, 2.0 / 3}, stored.Vector, 1e-6)
	}
	assert.Contains(t, buf.String(), "10/10")
}

func TestReembedder_EmptyIndex(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewReembedder(setupTestRepo(t, 0), mock.NewMockEmbedder(), nil, &buf)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Processed)
	assert.Contains(t, buf.String(), "0 resources")
}

func TestReembedder_StopsOnFailure(t *testing.T) {
	repo := setupTestRepo(t, 4)
	emb := mock.NewMockEmbedder()
	calls := 0
	emb.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("model unloaded")
		}
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{0, 1}
		}
		return out, nil
	}

	r, err := NewReembedder(repo, emb, &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 1}, nil)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, res.Processed)
}

func TestNewReembedder_Validation(t *testing.T) {
	repo := setupTestRepo(t, 0)
	emb := mock.NewMockEmbedder()

	_, err := NewReembedder(nil, emb, nil, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewReembedder(repo, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewReembedder(repo, emb, &Config{BatchSize: 0, MaxRetries: 1}, nil)
	assert.Error(t, err)

	_, err = NewReembedder(repo, emb, &Config{BatchSize: 1, MaxRetries: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}
