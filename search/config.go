package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/roadmapper/core"
)

// Config holds the tunables of the retrieval pipeline.
type Config struct {
	// ScoreFloor is the minimum similarity a vector hit needs.
	// Default: 0.4
	ScoreFloor float32

	// Variants is the number of rewordings requested from the text generator.
	// Default: 3
	Variants int

	// DescriptionLimit caps descriptions, in characters. Zero disables it.
	// Default: 200
	DescriptionLimit int

	// EllipsisMarker is appended to truncated descriptions.
	// Default: "..."
	EllipsisMarker string

	// WebQualifier is appended to the query on the first web search rung.
	// Default: "tutorial course"
	WebQualifier string

	// FallbackSearchURL prefixes the escaped query in the synthetic search link.
	// Default: "https://www.google.com/search?q="
	FallbackSearchURL string

	// Parallelism is the number of variant searches run at once.
	// Values of 1 or less search sequentially.
	// Default: 1
	Parallelism int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithScoreFloor sets the minimum vector similarity.
func WithScoreFloor(floor float32) ConfigOption {
	return func(c *Config) {
		c.ScoreFloor = floor
	}
}

// WithVariants sets the number of requested query rewordings.
func WithVariants(n int) ConfigOption {
	return func(c *Config) {
		c.Variants = n
	}
}

// WithDescriptionLimit sets the description cap.
func WithDescriptionLimit(n int) ConfigOption {
	return func(c *Config) {
		c.DescriptionLimit = n
	}
}

// WithWebQualifier sets the suffix for the first web search rung.
func WithWebQualifier(q string) ConfigOption {
	return func(c *Config) {
		c.WebQualifier = q
	}
}

// WithFallbackSearchURL sets the search link prefix.
func WithFallbackSearchURL(u string) ConfigOption {
	return func(c *Config) {
		c.FallbackSearchURL = u
	}
}

// WithParallelism sets how many variant searches run concurrently.
func WithParallelism(n int) ConfigOption {
	return func(c *Config) {
		c.Parallelism = n
	}
}

// DefaultConfig returns the default retrieval configuration.
func DefaultConfig() *Config {
	return &Config{
		ScoreFloor:        0.4,
		Variants:          3,
		DescriptionLimit:  200,
		EllipsisMarker:    "...",
		WebQualifier:      "tutorial course",
		FallbackSearchURL: "https://www.google.com/search?q=",
		Parallelism:       1,
	}
}

// NewConfig creates a Config with the default values and applies opts.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims string fields and lifts Parallelism to at least 1.
func (c *Config) Normalize() {
	c.WebQualifier = strings.TrimSpace(c.WebQualifier)
	c.FallbackSearchURL = strings.TrimSpace(c.FallbackSearchURL)
	if c.Parallelism < 1 {
		c.Parallelism = 1
	}
}

// Validate checks the configuration. It normalizes first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.ScoreFloor < -1 || c.ScoreFloor > 1 {
		return fmt.Errorf("%w: ScoreFloor must be between -1 and 1, got %v", ErrInvalidConfig, c.ScoreFloor)
	}
	if c.Variants < 1 {
		return fmt.Errorf("%w: Variants must be at least 1, got %d", ErrInvalidConfig, c.Variants)
	}
	if c.DescriptionLimit < 0 {
		return fmt.Errorf("%w: DescriptionLimit must not be negative", ErrInvalidConfig)
	}
	if c.FallbackSearchURL == "" {
		return fmt.Errorf("%w: FallbackSearchURL is required", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) truncate(text string) string {
	return core.TruncateDescription(text, c.DescriptionLimit, c.EllipsisMarker)
}
