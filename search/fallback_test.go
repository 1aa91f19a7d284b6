package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/websearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_NotTriggeredWhenFull(t *testing.T) {
	web := &fakeWeb{}
	f := NewFallback(web, nil, nil)
	local := []core.Resource{{URL: "https://a"}, {URL: "https://b"}}

	got := f.TopUp(context.Background(), "q", local, 2, map[string]struct{}{})
	assert.Equal(t, local, got)
	assert.Empty(t, web.queries)
}

func TestFallback_QualifiedQueryFirst(t *testing.T) {
	web := &fakeWeb{results: map[string][]websearch.Result{
		"rust tutorial course": webResults(5, "qualified"),
		"rust":                 webResults(5, "bare"),
	}}
	f := NewFallback(web, nil, nil)
	local := []core.Resource{{URL: "https://local"}}

	got := f.TopUp(context.Background(), "rust", local, 3, map[string]struct{}{"https://local": {}})

	assert.Equal(t, []string{"rust tutorial course"}, web.queries)
	assert.Equal(t, []int{2}, web.maxes)
	assert.Equal(t, []string{"https://local", "https://qualified.example/0", "https://qualified.example/1"}, urls(got))
	for _, r := range got[1:] {
		assert.Equal(t, core.TypeWebResource, r.Type)
		assert.Empty(t, r.ID)
	}
}

func TestFallback_BareQuerySecond(t *testing.T) {
	web := &fakeWeb{results: map[string][]websearch.Result{
		"rust": webResults(2, "bare"),
	}}
	f := NewFallback(web, nil, nil)

	got := f.TopUp(context.Background(), "rust", []core.Resource{}, 3, map[string]struct{}{})

	assert.Equal(t, []string{"rust tutorial course", "rust"}, web.queries)
	assert.Equal(t, []string{"https://bare.example/0", "https://bare.example/1"}, urls(got))
}

func TestFallback_SearchLink(t *testing.T) {
	t.Run("no results", func(t *testing.T) {
		web := &fakeWeb{}
		f := NewFallback(web, nil, nil)

		got := f.TopUp(context.Background(), "c++ for beginners", nil, 3, map[string]struct{}{})
		require.Len(t, got, 1)
		link := got[0]
		assert.True(t, link.IsSearchLink())
		assert.Equal(t, "Search Google for 'c++ for beginners'", link.Title)
		assert.Equal(t, "https://www.google.com/search?q=c%2B%2B%20for%20beginners", link.URL)
		assert.Equal(t, descNoResults, link.Description)
		assert.Len(t, web.queries, 2)
	})

	t.Run("provider error", func(t *testing.T) {
		web := &fakeWeb{err: errors.New("rate limited")}
		f := NewFallback(web, nil, nil)

		got := f.TopUp(context.Background(), "go", []core.Resource{{URL: "https://a"}}, 3, map[string]struct{}{})
		require.Len(t, got, 2)
		assert.Equal(t, descSearchFailed, got[1].Description)
		assert.Equal(t, []string{"go tutorial course"}, web.queries)
	})

	t.Run("nil provider", func(t *testing.T) {
		f := NewFallback(nil, nil, nil)
		got := f.TopUp(context.Background(), "go", nil, 2, map[string]struct{}{})
		require.Len(t, got, 1)
		assert.Equal(t, descNoResults, got[0].Description)
	})

	t.Run("exempt from dedup", func(t *testing.T) {
		f := NewFallback(nil, nil, nil)
		seen := map[string]struct{}{"https://www.google.com/search?q=go": {}}
		got := f.TopUp(context.Background(), "go", nil, 2, seen)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsSearchLink())
	})
}

func TestFallback_WebDedupAndTruncation(t *testing.T) {
	web := &fakeWeb{results: map[string][]websearch.Result{
		"go tutorial course": {
			{Title: "Dup", URL: "https://local", Snippet: "x"},
			{Title: "Long", URL: "https://long", Snippet: strings.Repeat("y", 201)},
			{Title: "No URL", Snippet: "a"},
			{Title: "No URL 2", Snippet: "b"},
		},
	}}
	f := NewFallback(web, NewConfig(WithDescriptionLimit(10)), nil)
	seen := map[string]struct{}{"https://local": {}}

	got := f.TopUp(context.Background(), "go", []core.Resource{{URL: "https://local"}}, 5, seen)

	require.Len(t, got, 4)
	assert.Equal(t, "Long", got[1].Title)
	assert.Equal(t, strings.Repeat("y", 10)+"...", got[1].Description)
	assert.Equal(t, "No URL", got[2].Title)
	assert.Equal(t, "No URL 2", got[3].Title)
}

func TestFallback_NoQualifier(t *testing.T) {
	web := &fakeWeb{}
	f := NewFallback(web, NewConfig(WithWebQualifier("")), nil)

	got := f.TopUp(context.Background(), "go", nil, 1, map[string]struct{}{})
	assert.Equal(t, []string{"go"}, web.queries)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsSearchLink())
}

func TestEscapeQuery(t *testing.T) {
	assert.Equal(t, "machine%20learning", escapeQuery("machine learning"))
	assert.Equal(t, "a%26b%3Dc", escapeQuery("a&b=c"))
	assert.Equal(t, "", escapeQuery(""))
}

func TestFallback_NilSeenSet(t *testing.T) {
	web := &fakeWeb{results: map[string][]websearch.Result{
		"go tutorial course": {
			{Title: "Local again", URL: "https://local"},
			{Title: "Fresh", URL: "https://fresh"},
		},
	}}
	f := NewFallback(web, nil, nil)
	local := []core.Resource{{URL: "https://local"}}

	var got []core.Resource
	require.NotPanics(t, func() {
		got = f.TopUp(context.Background(), "go", local, 3, nil)
	})
	assert.Equal(t, []string{"https://local", "https://fresh"}, urls(got))
}
