package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/roadmapper/ai"
	"google.golang.org/genai"
)

// Provider implements ai.AIProvider over a single genai client.
type Provider struct {
	embedder  *Embedder
	generator *Generator
	logger    *slog.Logger
}

// NewProvider creates a Gemini-backed provider. The config must select the
// gemini backend and carry an API key. A non-empty GeneratorHost overrides
// the API base URL.
func NewProvider(ctx context.Context, config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Backend != ai.BackendGemini {
		return nil, fmt.Errorf("gemini: %w: %q", ai.ErrUnknownBackend, config.Backend)
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeneratorHost != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.GeneratorHost}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newProvider(client.Models, config), nil
}

func newProvider(m models, config *ai.Config) *Provider {
	return &Provider{
		embedder:  newEmbedder(m, config.EmbeddingModel),
		generator: newGenerator(m, config),
		logger:    slog.Default().With("component", "gemini-provider"),
	}
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// TextGenerator returns the text generation service.
func (p *Provider) TextGenerator() ai.TextGenerator {
	return p.generator
}

// TopicPlanner returns the topic planner.
func (p *Provider) TopicPlanner() ai.TopicPlanner {
	return p.generator
}

// Close is a no-op; the genai client holds no resources that need releasing.
func (p *Provider) Close() error {
	p.logger.Debug("closing Gemini provider")
	return nil
}
