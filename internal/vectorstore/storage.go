package vectorstore

import (
	"context"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

// Storage persists chunk vectors and supports similarity search.
// The Q&A app only calls Search; the indexer also calls Upsert.
type Storage interface {
	Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]domain.SourceChunk, error)
	Count() int
}
