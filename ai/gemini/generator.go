package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"google.golang.org/genai"
)

// Generator implements ai.TextGenerator and ai.TopicPlanner with Gemini chat models.
type Generator struct {
	models      models
	model       string
	temperature float32
	maxTopics   int
	logger      *slog.Logger
}

func newGenerator(m models, config *ai.Config) *Generator {
	return &Generator{
		models:      m,
		model:       config.GeneratorModel,
		temperature: float32(config.Temperature),
		maxTopics:   config.MaxTopics,
		logger:      slog.Default().With("component", "gemini-generator"),
	}
}

func (g *Generator) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, cfg)
	if err != nil {
		g.logger.Error("failed to generate content", "model", g.model, "err", err)
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}

// GenerateText sends prompt as a single user turn and returns the answer.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
}

// PlanTopics asks the model for a JSON roadmap and decodes its nodes.
// Malformed answers are retried up to three times.
func (g *Generator) PlanTopics(ctx context.Context, goal string) ([]core.TopicNode, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ai.PlannerSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0)),
		ResponseMIMEType:  "application/json",
	}
	prompt := ai.PlannerPrompt(goal, g.maxTopics)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		text, err := g.generate(ctx, prompt, cfg)
		if err != nil && !errors.Is(err, ai.ErrEmptyResponse) {
			return nil, err
		}
		if err == nil {
			var nodes []core.TopicNode
			nodes, err = ai.ParseTopicNodes(text, g.maxTopics)
			if err == nil {
				return nodes, nil
			}
		}
		lastErr = err
		g.logger.Warn("error parsing planner response", "attempt", attempt+1, "err", err)
	}
	return nil, lastErr
}
