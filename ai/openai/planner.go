package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
	"github.com/tmc/langchaingo/llms"
)

// Planner implements ai.TopicPlanner with a JSON-mode chat completion.
type Planner struct {
	client    llms.Model
	maxTopics int
	logger    *slog.Logger
}

// newPlanner is an internal constructor that returns the concrete type.
func newPlanner(config *ai.Config, client llms.Model) *Planner {
	return &Planner{
		client:    client,
		maxTopics: config.MaxTopics,
		logger:    slog.Default().With("component", "openai-planner"),
	}
}

// NewPlanner creates a topic planner using the provided configuration.
//
// Returns ai.TopicPlanner interface to enforce abstraction.
func NewPlanner(config *ai.Config) (ai.TopicPlanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	return newPlanner(config, client), nil
}

// PlanTopics asks the model for a roadmap and decodes its nodes.
func (p *Planner) PlanTopics(ctx context.Context, goal string) ([]core.TopicNode, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(ai.PlannerSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(ai.PlannerPrompt(goal, p.maxTopics))},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			lastErr = ai.ErrEmptyResponse
			continue
		}

		nodes, err := ai.ParseTopicNodes(response.Choices[0].Content, p.maxTopics)
		if err != nil {
			lastErr = err
			p.logger.Warn("error parsing planner response",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		p.logger.Debug("planned topics", "goal", goal, "count", len(nodes))
		return nodes, nil
	}

	p.logger.Error("failed to parse planner response after retries", "err", lastErr)
	return nil, lastErr
}
