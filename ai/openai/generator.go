package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/roadmapper/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.TextGenerator using OpenAI-compatible chat APIs.
type Generator struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

func newChatClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken(token(config)),
		openai.WithModel(config.GeneratorModel),
	)
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config, client llms.Model) *Generator {
	return &Generator{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-generator"),
	}
}

// NewGenerator creates a text generator using the provided configuration.
//
// Returns ai.TextGenerator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.TextGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	return newGenerator(config, client), nil
}

// GenerateText sends prompt as a single user turn and returns the answer.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, g.client, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("failed to generate text", "err", err)
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ai.ErrEmptyResponse
	}
	return answer, nil
}
