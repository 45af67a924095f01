package rag

import (
	"testing"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

func candidateSet() []domain.SourceChunk {
	// a and b are near-duplicates close to the query; c is orthogonal.
	return []domain.SourceChunk{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{0.99, 0.05}},
		{ID: "c", Embedding: []float32{0, 1}},
	}
}

func TestMMR_LambdaOnePicksByRelevance(t *testing.T) {
	query := []float32{1, 0}
	got := maximalMarginalRelevance(query, candidateSet(), 1.0, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("lambda=1 must rank by pure relevance, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestMMR_LowLambdaPrefersDiversity(t *testing.T) {
	query := []float32{1, 0}
	got := maximalMarginalRelevance(query, candidateSet(), 0.3, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "a" {
		t.Errorf("first pick is always the most relevant, got %s", got[0].ID)
	}
	if got[1].ID != "c" {
		t.Errorf("low lambda should pick the diverse candidate second, got %s", got[1].ID)
	}
}

func TestMMR_KLargerThanCandidates(t *testing.T) {
	got := maximalMarginalRelevance([]float32{1, 0}, candidateSet(), 1.0, 10)
	if len(got) != 3 {
		t.Fatalf("expected all 3 candidates, got %d", len(got))
	}
}

func TestMMR_EmptyInput(t *testing.T) {
	if got := maximalMarginalRelevance([]float32{1, 0}, nil, 1.0, 3); got != nil {
		t.Fatalf("expected nil for no candidates, got %v", got)
	}
	if got := maximalMarginalRelevance([]float32{1, 0}, candidateSet(), 1.0, 0); got != nil {
		t.Fatalf("expected nil for k=0, got %v", got)
	}
}

func TestMMR_FallsBackToStoreScoreWithoutEmbeddings(t *testing.T) {
	candidates := []domain.SourceChunk{
		{ID: "low", Score: 0.2},
		{ID: "high", Score: 0.9},
	}
	got := maximalMarginalRelevance([]float32{1, 0}, candidates, 1.0, 1)
	if len(got) != 1 || got[0].ID != "high" {
		t.Fatalf("expected store score fallback to pick 'high', got %v", got)
	}
}
