package ai

import (
	"context"

	"github.com/poiesic/roadmapper/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TextGenerator produces free text from a single prompt.
// Calls are independent; no conversation state is kept between them.
// Implementations must be thread-safe for concurrent use.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TopicPlanner turns a learning goal into an ordered list of topic nodes.
// Implementations must be thread-safe for concurrent use.
type TopicPlanner interface {
	// PlanTopics returns the topics for goal in suggested learning order.
	// Returns an error if the planner fails or its answer cannot be decoded.
	PlanTopics(ctx context.Context, goal string) ([]core.TopicNode, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the services, ensuring they share
// configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// TextGenerator returns the single-prompt text generation service.
	TextGenerator() TextGenerator

	// TopicPlanner returns the roadmap topic planner.
	TopicPlanner() TopicPlanner

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
