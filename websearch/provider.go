package websearch

import "context"

// Result is a single web search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Provider performs keyword web searches.
// Implementations must be thread-safe for concurrent use.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Search returns up to maxResults hits for query in ranking order.
	// An empty slice with a nil error means the search found nothing.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
