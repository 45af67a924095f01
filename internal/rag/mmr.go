package rag

import (
	"math"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

// maximalMarginalRelevance re-ranks candidates and keeps k of them,
// trading off relevance to the query against redundancy among the picks.
// lambda 1.0 scores by relevance alone; lambda 0.0 by diversity alone.
func maximalMarginalRelevance(queryVec []float32, candidates []domain.SourceChunk, lambda float64, k int) []domain.SourceChunk {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	if k > len(candidates) {
		k = len(candidates)
	}
	if lambda < 0 {
		lambda = 0
	} else if lambda > 1 {
		lambda = 1
	}

	relevance := make([]float64, len(candidates))
	for i, c := range candidates {
		if len(c.Embedding) > 0 {
			relevance[i] = cosine(queryVec, c.Embedding)
		} else {
			// Stores that strip embeddings still report a similarity score.
			relevance[i] = c.Score
		}
	}

	selected := make([]domain.SourceChunk, 0, k)
	picked := make([]bool, len(candidates))
	for len(selected) < k {
		best := -1
		bestScore := math.Inf(-1)
		for i := range candidates {
			if picked[i] {
				continue
			}
			redundancy := 0.0
			for _, s := range selected {
				if len(candidates[i].Embedding) == 0 || len(s.Embedding) == 0 {
					continue
				}
				if sim := cosine(candidates[i].Embedding, s.Embedding); sim > redundancy {
					redundancy = sim
				}
			}
			score := lambda*relevance[i] - (1-lambda)*redundancy
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		picked[best] = true
		selected = append(selected, candidates[best])
	}
	return selected
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
