package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "https://go.dev/tour",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}

	if IDFromContent("a") == IDFromContent("b") {
		t.Error("IDFromContent() collided on distinct content")
	}
}

func TestIDString(t *testing.T) {
	if got := ID(42).String(); got != "42" {
		t.Errorf("ID.String() = %q, want %q", got, "42")
	}
}

func TestIndexedResourceEmbeddingText(t *testing.T) {
	r := &IndexedResource{Title: "Go Tour", Description: "Interactive intro"}
	if got := r.EmbeddingText(); got != "Go Tour: Interactive intro" {
		t.Errorf("EmbeddingText() = %q", got)
	}

	r.Description = ""
	if got := r.EmbeddingText(); got != "Go Tour" {
		t.Errorf("EmbeddingText() without description = %q", got)
	}
}

func TestIndexedResourcePublicID(t *testing.T) {
	r := &IndexedResource{Id: 7, SourceID: "src-1"}
	if got := r.PublicID(); got != "src-1" {
		t.Errorf("PublicID() = %q, want src-1", got)
	}
	r.SourceID = ""
	if got := r.PublicID(); got != "7" {
		t.Errorf("PublicID() = %q, want 7", got)
	}
}

func TestTopicNodeQuery(t *testing.T) {
	n := TopicNode{ID: "1", Title: "Goroutines", Description: "Lightweight threads"}
	if got := n.Query(); got != "Goroutines: Lightweight threads" {
		t.Errorf("Query() = %q", got)
	}
}

func TestResourceIsSearchLink(t *testing.T) {
	if !(Resource{Type: TypeSearchLink}).IsSearchLink() {
		t.Error("expected search link")
	}
	if (Resource{Type: TypeWebResource}).IsSearchLink() {
		t.Error("web resource reported as search link")
	}
}

func TestRoadmapResourceCount(t *testing.T) {
	rm := &Roadmap{Nodes: []RoadmapNode{
		{Resources: []Resource{{Title: "a"}, {Title: "b"}}},
		{},
		{Resources: []Resource{{Title: "c"}}},
	}}
	if got := rm.ResourceCount(); got != 3 {
		t.Errorf("ResourceCount() = %d, want 3", got)
	}
}

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"short text untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"cut with marker", "hello world", 5, "hello..."},
		{"multibyte runes", "héllo wörld", 4, "héll..."},
		{"zero limit disables", "hello", 0, "hello"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateDescription(tt.text, tt.limit, "..."); got != tt.want {
				t.Errorf("TruncateDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIndexedResourceContentKey(t *testing.T) {
	r := &IndexedResource{Title: "Go Tour", URL: "https://go.dev/tour"}
	if got := r.ContentKey(); got != "https://go.dev/tour" {
		t.Errorf("ContentKey() = %q", got)
	}
	r.URL = ""
	if got := r.ContentKey(); got != "Go Tour" {
		t.Errorf("ContentKey() without url = %q", got)
	}
}
