package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed resources.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Resource types.
const (
	TypeResource    = "resource"
	TypeWebResource = "Web Resource"
	TypeSearchLink  = "Search Link"
)

// Resource is a learning resource returned to callers.
// Web and synthetic items carry an empty ID.
type Resource struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
}

// IsSearchLink reports whether r is the synthetic fallback search link.
func (r Resource) IsSearchLink() bool {
	return r.Type == TypeSearchLink
}

// IndexedResource is a corpus item stored in a vector index.
type IndexedResource struct {
	Id           ID
	SourceID     string // Identifier from the originating corpus
	Title        string
	URL          string
	Description  string
	ContentType  string
	Source       string
	QualityScore float32
	Vector       []float32 // Embedding vector (populated during ingestion)
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// EmbeddingText returns the text that is embedded for this resource.
func (r *IndexedResource) EmbeddingText() string {
	if r.Description == "" {
		return r.Title
	}
	return r.Title + ": " + r.Description
}

// ContentKey returns the text the resource's content-derived ID is computed
// from: the URL, or the title when there is no URL.
func (r *IndexedResource) ContentKey() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Title
}

// PublicID returns the identifier exposed to callers: the source ID when
// present, else the storage ID.
func (r *IndexedResource) PublicID() string {
	if r.SourceID != "" {
		return r.SourceID
	}
	return r.Id.String()
}

// SearchResult represents a search result with the full resource and similarity score.
type SearchResult struct {
	Resource *IndexedResource
	Score    float32
}

// TopicNode is one node of a learning roadmap as produced by a planner.
type TopicNode struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites"`
}

// Query returns the retrieval query used to find resources for the node.
func (n TopicNode) Query() string {
	return n.Title + ": " + n.Description
}

// RoadmapNode is a topic node together with its retrieved resources.
type RoadmapNode struct {
	TopicNode `yaml:",inline"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

// Roadmap is an ordered list of topics for a learning goal.
type Roadmap struct {
	Goal  string        `json:"goal" yaml:"goal"`
	Nodes []RoadmapNode `json:"nodes" yaml:"nodes"`
}

// ResourceCount returns the total number of resources across all nodes.
func (r *Roadmap) ResourceCount() int {
	n := 0
	for _, node := range r.Nodes {
		n += len(node.Resources)
	}
	return n
}
