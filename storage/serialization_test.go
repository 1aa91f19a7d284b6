package storage

import (
	"testing"
	"time"

	"github.com/poiesic/roadmapper/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("https://go.dev")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalResource(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name     string
		resource *core.IndexedResource
	}{
		{
			name:     "minimal resource",
			resource: &core.IndexedResource{Id: 1, Title: "Go Tour"},
		},
		{
			name: "full resource",
			resource: &core.IndexedResource{
				Id:           core.IDFromContent("https://go.dev/tour"),
				SourceID:     "corpus-17",
				Title:        "A Tour of Go",
				URL:          "https://go.dev/tour",
				Description:  "Interactive introduction to Go, with ünïcode",
				ContentType:  "tutorial",
				Source:       "curated",
				QualityScore: 0.87,
				Vector:       []float32{0.1, -0.2, 0.3, 0},
				InsertedAt:   now,
				UpdatedAt:    now.Add(time.Minute),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalResource(tt.resource)
			decoded, err := UnmarshalResource(data)
			require.NoError(t, err)
			assert.Equal(t, tt.resource, decoded)
		})
	}
}

func TestUnmarshalResource_Truncated(t *testing.T) {
	data := MarshalResource(&core.IndexedResource{
		Id:     5,
		Title:  "Effective Go",
		URL:    "https://go.dev/doc/effective_go",
		Vector: []float32{1, 2, 3},
	})

	for _, cut := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := UnmarshalResource(data[:cut])
		assert.ErrorIs(t, err, ErrSerializationFailed, "cut at %d", cut)
	}
}

func TestUnmarshalResource_Normalizes(t *testing.T) {
	local := time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.FixedZone("CET", 3600))
	decoded, err := UnmarshalResource(MarshalResource(&core.IndexedResource{
		Id:         7,
		Title:      "Go Blog",
		Vector:     []float32{},
		InsertedAt: local,
	}))
	require.NoError(t, err)
	assert.Nil(t, decoded.Vector)
	assert.Equal(t, time.UTC, decoded.InsertedAt.Location())
	assert.True(t, decoded.InsertedAt.Equal(local))
	assert.True(t, decoded.UpdatedAt.IsZero())
}

func TestStoredTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.FixedZone("CET", 3600))
	stored := StoredTime(ts)
	assert.Equal(t, 123456000, stored.Nanosecond())
	assert.Equal(t, time.UTC, stored.Location())

	decoded, err := UnmarshalResource(MarshalResource(&core.IndexedResource{Id: 1, InsertedAt: stored}))
	require.NoError(t, err)
	assert.Equal(t, stored, decoded.InsertedAt)

	assert.True(t, StoredTime(time.Time{}).IsZero())
	assert.Zero(t, Now().Nanosecond()%1000)
}

func TestResourceMUS_SizeAndSkip(t *testing.T) {
	res := core.IndexedResource{
		Id:       core.IDFromContent("https://go.dev/tour"),
		SourceID: "corpus-3",
		Title:    "A Tour of Go",
		URL:      "https://go.dev/tour",
		Vector:   []float32{0.5, -0.5},
	}
	data := MarshalResource(&res)
	assert.Len(t, data, core.IndexedResourceMUS.Size(res))

	n, err := core.IndexedResourceMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
}
