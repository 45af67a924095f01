package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

// Storage is a simple in-memory vector store using brute-force cosine
// similarity. It backs tests and ephemeral sessions; the persistent store
// is the chromem implementation.
type Storage struct {
	mu      sync.RWMutex
	chunks  []domain.Chunk
	vectors [][]float32
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Storage) Search(ctx context.Context, vector []float32, topK int) ([]domain.SourceChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 3
	}
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(s.vectors))
	for i := range s.vectors {
		scores[i] = scored{i, cosine(s.vectors[i], vector)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}
	results := make([]domain.SourceChunk, 0, topK)
	for i := 0; i < topK; i++ {
		ch := s.chunks[scores[i].idx]
		results = append(results, domain.SourceChunk{
			ID:        ch.ChunkID,
			Content:   ch.Text,
			Metadata:  ch.Metadata,
			Embedding: s.vectors[scores[i].idx],
			Score:     scores[i].score,
		})
	}
	return results, nil
}

func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
