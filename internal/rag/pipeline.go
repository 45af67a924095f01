package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/vectorstore"
)

// Pipeline answers questions about the indexed report: it embeds the query,
// retrieves the most relevant chunks from the vector store, and asks the
// chat model to answer from them.
type Pipeline struct {
	embedder  domain.Embedder
	generator domain.Generator
	store     vectorstore.Storage
	topK      int
	fetchK    int
	lambda    float64
}

// Options tunes retrieval. Zero values fall back to k=3 over 12 candidates
// with relevance-only re-ranking.
type Options struct {
	TopK   int
	FetchK int
	Lambda float64
}

func New(embedder domain.Embedder, generator domain.Generator, store vectorstore.Storage, opts Options) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.FetchK < opts.TopK {
		opts.FetchK = 4 * opts.TopK
	}
	if opts.Lambda == 0 {
		opts.Lambda = 1.0
	}
	return &Pipeline{
		embedder:  embedder,
		generator: generator,
		store:     store,
		topK:      opts.TopK,
		fetchK:    opts.FetchK,
		lambda:    opts.Lambda,
	}
}

// Ask runs the full retrieve-then-generate cycle for one query.
func (p *Pipeline) Ask(ctx context.Context, query string) (domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{}, errors.New("empty query")
	}

	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("embedding error: %w", err)
	}

	candidates, err := p.store.Search(ctx, vec, p.fetchK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("search error: %w", err)
	}
	sources := maximalMarginalRelevance(vec, candidates, p.lambda, p.topK)

	answer, err := p.generator.Generate(ctx, buildPrompt(query, sources))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("llm error: %w", err)
	}

	return domain.Answer{Text: answer, Sources: sources}, nil
}

func buildPrompt(query string, sources []domain.SourceChunk) string {
	var b strings.Builder
	b.WriteString("You are an assistant answering questions about a company's sustainability report. ")
	b.WriteString("Answer strictly from the context below. If the context does not contain enough information, say so honestly.\n\n")
	b.WriteString("Context:\n")
	for i, s := range sources {
		fmt.Fprintf(&b, "[source %d]\n%s\n\n", i+1, s.Content)
	}
	fmt.Fprintf(&b, "Question: %s\n", query)
	return b.String()
}
