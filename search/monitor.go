package search

import (
	"github.com/poiesic/roadmapper/core"
)

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results.
// Hooks may be called from the goroutine running FindResources only.
type SearchMonitor interface {
	Start(query string, limit int)
	AfterExpansion(variants []string)
	AfterVariantSearch(variant string, hits []*core.SearchResult)
	AfterMerge(local []core.Resource)
	AfterFallback(added []core.Resource)
	Finish(results []core.Resource)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)                            {}
func (n *noopMonitor) AfterExpansion(_ []string)                        {}
func (n *noopMonitor) AfterVariantSearch(_ string, _ []*core.SearchResult) {}
func (n *noopMonitor) AfterMerge(_ []core.Resource)                     {}
func (n *noopMonitor) AfterFallback(_ []core.Resource)                  {}
func (n *noopMonitor) Finish(_ []core.Resource)                         {}
