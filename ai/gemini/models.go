package gemini

import (
	"context"

	"google.golang.org/genai"
)

// models is the subset of *genai.Models used by this package.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

var _ models = (*genai.Models)(nil)
