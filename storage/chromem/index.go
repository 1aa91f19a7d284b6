// Package chromem provides a storage.Index backed by the chromem-go embedded
// vector database.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/storage"
)

// DefaultCollection is the collection resources are stored in.
const DefaultCollection = "resources"

// Metadata keys stored alongside each document.
const (
	metaTitle        = "title"
	metaURL          = "url"
	metaDescription  = "description"
	metaContentType  = "content_type"
	metaSource       = "source"
	metaSourceID     = "source_id"
	metaQualityScore = "quality_score"
	metaInsertedAt   = "inserted_at"
)

// errNoEmbedder is returned if chromem ever tries to embed text itself.
// Vectors are always computed by the caller.
var errNoEmbedder = errors.New("chromem: embeddings must be supplied by the caller")

// Index implements storage.Index over a chromem collection.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *slog.Logger
}

var _ storage.Index = (*Index)(nil)

// NewIndex opens an index. An empty path creates an in-memory database;
// otherwise the database is persisted under path.
func NewIndex(path string, compress bool) (storage.Index, error) {
	var (
		db  *chromem.DB
		err error
	)
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, compress)
		if err != nil {
			return nil, fmt.Errorf("open vector db: %w", err)
		}
	}

	embed := func(ctx context.Context, text string) ([]float32, error) {
		return nil, errNoEmbedder
	}
	col, err := db.GetOrCreateCollection(DefaultCollection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("get/create collection: %w", err)
	}

	logger := slog.Default().With("component", "chromem")
	logger.Info("vector store loaded", "path", path, "count", col.Count())
	return &Index{db: db, collection: col, logger: logger}, nil
}

// FindSimilar queries the collection and drops results below minSimilarity.
func (i *Index) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", storage.ErrInvalidQuery, limit)
	}
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}

	// chromem rejects nResults larger than the collection.
	k := min(limit, count)

	docs, err := i.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}

	results := make([]*core.SearchResult, 0, len(docs))
	for _, d := range docs {
		if d.Similarity < minSimilarity {
			continue
		}
		res, err := fromDocument(d.ID, d.Metadata, d.Embedding)
		if err != nil {
			i.logger.Warn("skipping malformed document", "id", d.ID, "error", err)
			continue
		}
		results = append(results, &core.SearchResult{Resource: res, Score: d.Similarity})
	}
	return results, nil
}

// AddResources writes resources as chromem documents.
func (i *Index) AddResources(ctx context.Context, resources ...*core.IndexedResource) error {
	if len(resources) == 0 {
		return nil
	}
	now := storage.Now()
	docs := make([]chromem.Document, 0, len(resources))
	for _, res := range resources {
		if len(res.Vector) == 0 {
			return fmt.Errorf("%w: %q", storage.ErrMissingVector, res.Title)
		}
		if res.Id == 0 {
			res.Id = core.IDFromContent(res.ContentKey())
		}
		if res.InsertedAt.IsZero() {
			res.InsertedAt = now
		} else {
			res.InsertedAt = storage.StoredTime(res.InsertedAt)
		}
		res.UpdatedAt = now
		docs = append(docs, toDocument(res))
	}
	return i.collection.AddDocuments(ctx, docs, runtime.NumCPU())
}

// Count returns the number of documents in the collection.
func (i *Index) Count(ctx context.Context) (int, error) {
	return i.collection.Count(), nil
}

// Close is a no-op; chromem persists on every write.
func (i *Index) Close() error {
	return nil
}

func toDocument(res *core.IndexedResource) chromem.Document {
	return chromem.Document{
		ID:      res.Id.String(),
		Content: res.EmbeddingText(),
		Metadata: map[string]string{
			metaTitle:        res.Title,
			metaURL:          res.URL,
			metaDescription:  res.Description,
			metaContentType:  res.ContentType,
			metaSource:       res.Source,
			metaSourceID:     res.SourceID,
			metaQualityScore: strconv.FormatFloat(float64(res.QualityScore), 'f', -1, 32),
			metaInsertedAt:   res.InsertedAt.Format(time.RFC3339Nano),
		},
		Embedding: res.Vector,
	}
}

func fromDocument(id string, meta map[string]string, embedding []float32) (*core.IndexedResource, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: document id %q", storage.ErrSerializationFailed, id)
	}
	res := &core.IndexedResource{
		Id:          core.ID(n),
		SourceID:    meta[metaSourceID],
		Title:       meta[metaTitle],
		URL:         meta[metaURL],
		Description: meta[metaDescription],
		ContentType: meta[metaContentType],
		Source:      meta[metaSource],
		Vector:      embedding,
	}
	if s := meta[metaQualityScore]; s != "" {
		if q, err := strconv.ParseFloat(s, 32); err == nil {
			res.QualityScore = float32(q)
		}
	}
	if s := meta[metaInsertedAt]; s != "" {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			res.InsertedAt = ts
			res.UpdatedAt = ts
		}
	}
	return res, nil
}
