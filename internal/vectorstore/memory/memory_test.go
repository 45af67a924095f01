package memory

import (
	"context"
	"testing"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

func TestUpsertAndSearch(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ChunkID: "a", Text: "alpha", Metadata: map[string]string{"page": "1"}},
		{ChunkID: "b", Text: "beta"},
		{ChunkID: "c", Text: "gamma"},
	}
	vectors := [][]float32{
		{1, 0},
		{0.7, 0.7},
		{0, 1},
	}
	if err := s.Upsert(ctx, chunks, vectors); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 3 {
		t.Fatalf("expected 3 chunks, got %d", s.Count())
	}

	res, err := s.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	if res[0].ID != "a" || res[1].ID != "b" {
		t.Errorf("unexpected ranking: %s, %s", res[0].ID, res[1].ID)
	}
	if res[0].Score <= res[1].Score {
		t.Errorf("scores must be descending: %v, %v", res[0].Score, res[1].Score)
	}
	if res[0].Metadata["page"] != "1" {
		t.Errorf("metadata must be carried through search")
	}
	if len(res[0].Embedding) == 0 {
		t.Error("embedding must be carried through search for re-ranking")
	}
}

func TestSearch_TopKLargerThanStore(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	if err := s.Upsert(ctx, []domain.Chunk{{ChunkID: "only", Text: "x"}}, [][]float32{{1}}); err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(ctx, []float32{1}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
}

func TestUpsert_LengthMismatch(t *testing.T) {
	s := NewStorage()
	err := s.Upsert(context.Background(), []domain.Chunk{{ChunkID: "a"}}, nil)
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestSearch_EmptyStore(t *testing.T) {
	s := NewStorage()
	res, err := s.Search(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Fatalf("expected no results, got %d", len(res))
	}
}
