package chromem

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

// Store is a persistent local vector store backed by chromem-go.
// Embeddings are always supplied explicitly, so the collection's embedding
// function is a stub that rejects any implicit embedding attempt.
type Store struct {
	db  *chromemgo.DB
	col *chromemgo.Collection
}

// Config locates the persistent database and the collection within it.
type Config struct {
	Path       string
	Collection string
}

// Open opens an existing store for querying. It fails if the collection has
// not been built yet, which is a fatal startup condition for the Q&A app.
func Open(cfg Config) (*Store, error) {
	db, err := chromemgo.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store at %s: %w", cfg.Path, err)
	}
	col := db.GetCollection(cfg.Collection, rejectImplicitEmbedding)
	if col == nil {
		return nil, fmt.Errorf("collection %q not found in %s: build it with sustainability-index first", cfg.Collection, cfg.Path)
	}
	return &Store{db: db, col: col}, nil
}

// OpenOrCreate opens the store, creating the collection if missing.
// Used by the indexer.
func OpenOrCreate(cfg Config) (*Store, error) {
	db, err := chromemgo.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store at %s: %w", cfg.Path, err)
	}
	col, err := db.GetOrCreateCollection(cfg.Collection, nil, rejectImplicitEmbedding)
	if err != nil {
		return nil, fmt.Errorf("create collection %q: %w", cfg.Collection, err)
	}
	return &Store{db: db, col: col}, nil
}

func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	if len(chunks) == 0 {
		return nil
	}
	docs := make([]chromemgo.Document, len(chunks))
	for i, ch := range chunks {
		docs[i] = chromemgo.Document{
			ID:        ch.ChunkID,
			Content:   ch.Text,
			Metadata:  ch.Metadata,
			Embedding: vectors[i],
		}
	}
	if err := s.col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]domain.SourceChunk, error) {
	if topK <= 0 {
		topK = 3
	}
	// chromem rejects nResults larger than the collection size.
	if n := s.col.Count(); topK > n {
		topK = n
	}
	if topK == 0 {
		return nil, nil
	}
	res, err := s.col.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}
	out := make([]domain.SourceChunk, 0, len(res))
	for _, r := range res {
		out = append(out, domain.SourceChunk{
			ID:        r.ID,
			Content:   r.Content,
			Metadata:  r.Metadata,
			Embedding: r.Embedding,
			Score:     float64(r.Similarity),
		})
	}
	return out, nil
}

// Count reports how many chunks the collection holds.
func (s *Store) Count() int {
	return s.col.Count()
}

func rejectImplicitEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embeddings must be provided explicitly")
}
