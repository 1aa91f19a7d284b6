package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/websearch"
)

// fakeIndex answers FindSimilar from a per-call function.
type fakeIndex struct {
	mu    sync.Mutex
	calls int
	find  func(call int, vector []float32, floor float32, limit int) ([]*core.SearchResult, error)
}

func (f *fakeIndex) FindSimilar(ctx context.Context, vector []float32, floor float32, limit int) ([]*core.SearchResult, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.mu.Unlock()
	if f.find == nil {
		return nil, nil
	}
	return f.find(call, vector, floor, limit)
}

func (f *fakeIndex) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeWeb answers searches from a map keyed by query.
type fakeWeb struct {
	results map[string][]websearch.Result
	err     error
	queries []string
	maxes   []int
}

func (f *fakeWeb) Name() string { return "fake" }

func (f *fakeWeb) Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
	f.queries = append(f.queries, query)
	f.maxes = append(f.maxes, maxResults)
	if f.err != nil {
		return nil, f.err
	}
	res := f.results[query]
	if len(res) > maxResults {
		res = res[:maxResults]
	}
	return res, nil
}

func hit(id core.ID, url string, score float32) *core.SearchResult {
	return &core.SearchResult{
		Resource: &core.IndexedResource{
			Id:          id,
			Title:       fmt.Sprintf("Resource %d", id),
			URL:         url,
			Description: "about resource",
			ContentType: "course",
		},
		Score: score,
	}
}

func webResults(n int, prefix string) []websearch.Result {
	out := make([]websearch.Result, n)
	for i := range out {
		out[i] = websearch.Result{
			Title:   fmt.Sprintf("%s %d", prefix, i),
			URL:     fmt.Sprintf("https://%s.example/%d", prefix, i),
			Snippet: "snippet",
		}
	}
	return out
}

func urls(resources []core.Resource) []string {
	out := make([]string, len(resources))
	for i, r := range resources {
		out[i] = r.URL
	}
	return out
}
