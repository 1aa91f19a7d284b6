// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads application settings from a YAML file and
// ROADMAPPER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/reembed"
	"github.com/poiesic/roadmapper/search"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ROADMAPPER_AI_BACKEND.
const EnvPrefix = "ROADMAPPER"

// Store backends.
const (
	StoreBadger  = "badger"
	StoreChromem = "chromem"
)

// ErrInvalidConfig is returned when loaded settings are rejected.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete application configuration.
type Config struct {
	AI        AIConfig        `mapstructure:"ai"`
	Search    SearchConfig    `mapstructure:"search"`
	Store     StoreConfig     `mapstructure:"store"`
	Web       WebConfig       `mapstructure:"web"`
	Roadmap   RoadmapConfig   `mapstructure:"roadmap"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Reembed   ReembedConfig   `mapstructure:"reembed"`
}

type AIConfig struct {
	Backend        string  `mapstructure:"backend"`
	EmbeddingHost  string  `mapstructure:"embedding_host"`
	GeneratorHost  string  `mapstructure:"generator_host"`
	EmbeddingModel string  `mapstructure:"embedding_model"`
	GeneratorModel string  `mapstructure:"generator_model"`
	APIKey         string  `mapstructure:"api_key"`
	Temperature    float64 `mapstructure:"temperature"`
	MaxTopics      int     `mapstructure:"max_topics"`
}

type SearchConfig struct {
	ScoreFloor        float32 `mapstructure:"score_floor"`
	Variants          int     `mapstructure:"variants"`
	DescriptionLimit  int     `mapstructure:"description_limit"`
	WebQualifier      string  `mapstructure:"web_qualifier"`
	FallbackSearchURL string  `mapstructure:"fallback_search_url"`
	Parallelism       int     `mapstructure:"parallelism"`
	QueryExpansion    bool    `mapstructure:"query_expansion"`
}

type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"` // empty keeps the index in memory
	Compress bool   `mapstructure:"compress"`
}

type WebConfig struct {
	Provider    string        `mapstructure:"provider"` // duckduckgo, brave or none
	BraveAPIKey string        `mapstructure:"brave_api_key"`
	UserAgent   string        `mapstructure:"user_agent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
}

type RoadmapConfig struct {
	ResourcesPerTopic int `mapstructure:"resources_per_topic"`
	PoolSize          int `mapstructure:"pool_size"`
}

type IngestionConfig struct {
	BatchSize int `mapstructure:"batch_size"`
	PoolSize  int `mapstructure:"pool_size"`
}

type ReembedConfig struct {
	BatchSize  int           `mapstructure:"batch_size"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

func setDefaults(v *viper.Viper) {
	a := ai.DefaultConfig()
	v.SetDefault("ai.backend", a.Backend)
	v.SetDefault("ai.embedding_host", a.EmbeddingHost)
	v.SetDefault("ai.generator_host", a.GeneratorHost)
	v.SetDefault("ai.embedding_model", a.EmbeddingModel)
	v.SetDefault("ai.generator_model", a.GeneratorModel)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.temperature", a.Temperature)
	v.SetDefault("ai.max_topics", a.MaxTopics)

	s := search.DefaultConfig()
	v.SetDefault("search.score_floor", s.ScoreFloor)
	v.SetDefault("search.variants", s.Variants)
	v.SetDefault("search.description_limit", s.DescriptionLimit)
	v.SetDefault("search.web_qualifier", s.WebQualifier)
	v.SetDefault("search.fallback_search_url", s.FallbackSearchURL)
	v.SetDefault("search.parallelism", s.Parallelism)
	v.SetDefault("search.query_expansion", true)

	v.SetDefault("store.backend", StoreBadger)
	v.SetDefault("store.path", "roadmapper.db")
	v.SetDefault("store.compress", false)

	v.SetDefault("web.provider", "duckduckgo")
	v.SetDefault("web.brave_api_key", "")
	v.SetDefault("web.user_agent", "")
	v.SetDefault("web.timeout", 15*time.Second)
	v.SetDefault("web.max_retries", 3)

	v.SetDefault("roadmap.resources_per_topic", 3)
	v.SetDefault("roadmap.pool_size", 4)

	v.SetDefault("ingestion.batch_size", 100)
	v.SetDefault("ingestion.pool_size", 0)

	r := reembed.DefaultConfig()
	v.SetDefault("reembed.batch_size", r.BatchSize)
	v.SetDefault("reembed.max_retries", r.MaxRetries)
	v.SetDefault("reembed.retry_delay", r.RetryDelay)
}

// Load reads the YAML file at path, when given, and applies environment
// overrides on top of the defaults. BRAVE_API_KEY is honoured when the
// prefixed variable is unset, and so is GEMINI_API_KEY for the gemini backend.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("ai.backend")))
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && backend == ai.BackendGemini && v.GetString("ai.api_key") == "" {
		v.Set("ai.api_key", key)
	}
	if key := os.Getenv("BRAVE_API_KEY"); key != "" && v.GetString("web.brave_api_key") == "" {
		v.Set("web.brave_api_key", key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks cross-section settings and each package configuration.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case StoreBadger, StoreChromem:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.SearchConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.ReembedConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Roadmap.ResourcesPerTopic < 1 {
		return fmt.Errorf("%w: roadmap.resources_per_topic must be at least 1", ErrInvalidConfig)
	}
	if c.Web.Timeout < 0 {
		return fmt.Errorf("%w: web.timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// AIConfig maps the ai section onto an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithBackend(c.AI.Backend),
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithGeneratorHost(c.AI.GeneratorHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithGeneratorModel(c.AI.GeneratorModel),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithTemperature(c.AI.Temperature),
		ai.WithMaxTopics(c.AI.MaxTopics),
	)
}

// SearchConfig maps the search section onto a search.Config.
func (c *Config) SearchConfig() *search.Config {
	return search.NewConfig(
		search.WithScoreFloor(c.Search.ScoreFloor),
		search.WithVariants(c.Search.Variants),
		search.WithDescriptionLimit(c.Search.DescriptionLimit),
		search.WithWebQualifier(c.Search.WebQualifier),
		search.WithFallbackSearchURL(c.Search.FallbackSearchURL),
		search.WithParallelism(c.Search.Parallelism),
	)
}

// ReembedConfig maps the reembed section onto a reembed.Config.
func (c *Config) ReembedConfig() *reembed.Config {
	cfg := reembed.DefaultConfig()
	cfg.BatchSize = c.Reembed.BatchSize
	cfg.MaxRetries = c.Reembed.MaxRetries
	cfg.RetryDelay = c.Reembed.RetryDelay
	return cfg
}
