package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/roadmapper/ai"
)

// QueryExpander rewords a query into related variants to broaden recall.
type QueryExpander struct {
	generator ai.TextGenerator
	variants  int
	logger    *slog.Logger
}

// NewQueryExpander creates an expander. A nil generator disables expansion.
func NewQueryExpander(generator ai.TextGenerator, variants int, logger *slog.Logger) *QueryExpander {
	if logger == nil {
		logger = slog.Default()
	}
	if variants < 1 {
		variants = DefaultConfig().Variants
	}
	return &QueryExpander{
		generator: generator,
		variants:  variants,
		logger:    logger.With("component", "query-expander"),
	}
}

// Expand returns the generated variants followed by the original query,
// deduplicated in first-seen order. It never returns an empty slice: any
// generator failure yields just the original query.
func (e *QueryExpander) Expand(ctx context.Context, query string) []string {
	if e == nil || e.generator == nil {
		return []string{query}
	}

	answer, err := e.generator.GenerateText(ctx, expansionPrompt(query, e.variants))
	if err != nil {
		e.logger.Warn("query expansion failed, using original query", "query", query, "err", err)
		return []string{query}
	}

	parsed := parseVariants(answer)
	if len(parsed) == 0 {
		e.logger.Warn("query expansion returned nothing usable, using original query", "query", query)
		return []string{query}
	}
	if len(parsed) > e.variants {
		parsed = parsed[:e.variants]
	}

	out := make([]string, 0, len(parsed)+1)
	seen := make(map[string]struct{}, len(parsed)+1)
	for _, v := range append(parsed, query) {
		key := strings.TrimSpace(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// expansionPrompt keeps the query on the last line.
func expansionPrompt(query string, n int) string {
	return fmt.Sprintf(
		"Generate exactly %d distinct, specific search queries that reword the query below "+
			"to find learning resources such as courses, tutorials and articles. "+
			"Answer with a single comma-separated list. Do not number or quote the queries.\n"+
			"Query:\n%s", n, query)
}

// parseVariants splits a comma-separated answer into trimmed, non-empty
// variants, removing list numbering, bullets and quotes.
func parseVariants(answer string) []string {
	answer = strings.ReplaceAll(answer, "\n", ",")
	parts := strings.Split(answer, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		v := cleanVariant(part)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cleanVariant(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*• ")
	// "1." or "2)" prefixes
	if i := strings.IndexAny(s, ".)"); i > 0 && i <= 3 && isDigits(s[:i]) {
		s = s[i+1:]
	}
	s = strings.Trim(strings.TrimSpace(s), "\"'`“”")
	return strings.TrimSpace(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
