package search

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/websearch"
)

const (
	descNoResults    = "No direct resources found. Click to search on Google."
	descSearchFailed = "Search failed. Click to search on Google."
)

// Fallback tops a short result list up from a web search provider.
type Fallback struct {
	provider websearch.Provider
	config   *Config
	logger   *slog.Logger
}

// NewFallback creates a fallback controller. A nil provider goes straight to
// the synthetic search link.
func NewFallback(provider websearch.Provider, config *Config, logger *slog.Logger) *Fallback {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		provider: provider,
		config:   config,
		logger:   logger.With("component", "fallback"),
	}
}

// TopUp appends web results to results until limit is reached. It tries the
// qualified query, then the bare query, and finally appends a single search
// link. Web results whose URL is already in seen are skipped. A nil seen is
// built from the URLs in results.
func (f *Fallback) TopUp(ctx context.Context, query string, results []core.Resource, limit int, seen map[string]struct{}) []core.Resource {
	if seen == nil {
		seen = make(map[string]struct{}, len(results))
		for _, r := range results {
			if r.URL != "" {
				seen[r.URL] = struct{}{}
			}
		}
	}
	if len(results) >= limit {
		return results
	}
	want := limit - len(results)

	if f.provider == nil {
		return append(results, f.searchLink(query, false))
	}

	queries := []string{query}
	if f.config.WebQualifier != "" {
		queries = []string{strings.TrimSpace(query + " " + f.config.WebQualifier), query}
	}

	failed := false
	for _, q := range queries {
		hits, err := f.provider.Search(ctx, q, want)
		if err != nil {
			f.logger.Warn("web search failed", "provider", f.provider.Name(), "query", q, "err", err)
			failed = true
			break
		}
		if len(hits) == 0 {
			f.logger.Debug("web search returned nothing", "provider", f.provider.Name(), "query", q)
			continue
		}
		return f.appendWeb(results, hits, limit, seen)
	}

	return append(results, f.searchLink(query, failed))
}

func (f *Fallback) appendWeb(results []core.Resource, hits []websearch.Result, limit int, seen map[string]struct{}) []core.Resource {
	for _, hit := range hits {
		if len(results) >= limit {
			break
		}
		if hit.URL != "" {
			if _, dup := seen[hit.URL]; dup {
				continue
			}
			seen[hit.URL] = struct{}{}
		}
		results = append(results, core.Resource{
			Title:       hit.Title,
			URL:         hit.URL,
			Description: f.config.truncate(hit.Snippet),
			Type:        core.TypeWebResource,
		})
	}
	return results
}

func (f *Fallback) searchLink(query string, failed bool) core.Resource {
	desc := descNoResults
	if failed {
		desc = descSearchFailed
	}
	return core.Resource{
		Title:       "Search Google for '" + query + "'",
		URL:         f.config.FallbackSearchURL + escapeQuery(query),
		Description: desc,
		Type:        core.TypeSearchLink,
	}
}

// escapeQuery percent-encodes query, spaces included as %20.
func escapeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
