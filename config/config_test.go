package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/roadmapper/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roadmapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ai.BackendOpenAI, cfg.AI.Backend)
	assert.Equal(t, float32(0.4), cfg.Search.ScoreFloor)
	assert.True(t, cfg.Search.QueryExpansion)
	assert.Equal(t, StoreBadger, cfg.Store.Backend)
	assert.Equal(t, "duckduckgo", cfg.Web.Provider)
	assert.Equal(t, 15*time.Second, cfg.Web.Timeout)
	assert.Equal(t, 3, cfg.Roadmap.ResourcesPerTopic)
	assert.Equal(t, time.Second, cfg.Reembed.RetryDelay)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
ai:
  backend: gemini
  api_key: secret
  embedding_model: text-embedding-004
  generator_model: gemini-2.0-flash
search:
  score_floor: 0.55
  parallelism: 4
  query_expansion: false
store:
  backend: chromem
  path: /tmp/vectors
web:
  provider: none
  timeout: 3s
reembed:
  retry_delay: 250ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Backend)
	assert.False(t, cfg.Search.QueryExpansion)
	assert.Equal(t, StoreChromem, cfg.Store.Backend)
	assert.Equal(t, 3*time.Second, cfg.Web.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Reembed.RetryDelay)

	sc := cfg.SearchConfig()
	assert.Equal(t, float32(0.55), sc.ScoreFloor)
	assert.Equal(t, 4, sc.Parallelism)

	ac := cfg.AIConfig()
	assert.Equal(t, "secret", ac.APIKey)
	assert.Equal(t, "gemini-2.0-flash", ac.GeneratorModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROADMAPPER_SEARCH_VARIANTS", "5")
	t.Setenv("ROADMAPPER_STORE_PATH", "/data/index")
	t.Setenv("BRAVE_API_KEY", "brave-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Search.Variants)
	assert.Equal(t, "/data/index", cfg.Store.Path)
	assert.Equal(t, "brave-key", cfg.Web.BraveAPIKey)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	t.Run("applies to gemini backend", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ai:\n  backend: Gemini\n"))
		require.NoError(t, err)
		assert.Equal(t, "gemini-key", cfg.AI.APIKey)
	})

	t.Run("ignored for openai backend", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ai.BackendOpenAI, cfg.AI.Backend)
		assert.Empty(t, cfg.AI.APIKey)
	})

	t.Run("explicit key wins", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ai:\n  backend: gemini\n  api_key: from-file\n"))
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.AI.APIKey)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown store", "store:\n  backend: qdrant\n"},
		{"bad score floor", "search:\n  score_floor: 3\n"},
		{"gemini without key", "ai:\n  backend: gemini\n"},
		{"zero resources per topic", "roadmap:\n  resources_per_topic: 0\n"},
		{"zero reembed batch", "reembed:\n  batch_size: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
