package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// BraveURL is the Brave Search web endpoint.
const BraveURL = "https://api.search.brave.com/res/v1/web/search"

// Brave searches with the Brave Search API.
type Brave struct {
	clientSettings
	apiKey  string
	country string
	lang    string
}

var _ Provider = (*Brave)(nil)

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// NewBrave creates a Brave provider. apiKey is required.
func NewBrave(apiKey string, opts ...Option) (*Brave, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	s := applyOptions(defaultSettings(BraveURL), opts)
	s.logger = s.logger.With("component", "brave")
	return &Brave{
		clientSettings: s,
		apiKey:         apiKey,
		country:        "US",
		lang:           "en",
	}, nil
}

// Name returns the provider name.
func (b *Brave) Name() string {
	return "brave"
}

// Search returns up to maxResults hits. Brave caps count at 20.
func (b *Brave) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults < 1 {
		return []Result{}, nil
	}
	count := min(maxResults, 20)

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("country", b.country)
	params.Set("search_lang", b.lang)
	reqURL := fmt.Sprintf("%s?%s", b.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := DoWithRetry(ctx, b.httpClient, req, b.maxRetries, b.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: brave returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(body.Web.Results))
	for _, r := range body.Web.Results {
		if r.URL == "" || r.Title == "" {
			continue
		}
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
		if len(results) == count {
			break
		}
	}

	b.logger.Debug("search complete", "query", query, "results", len(results))
	return results, nil
}
