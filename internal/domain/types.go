package domain

import "context"

// Document represents a single report file loaded for indexing.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a semantically meaningful part of a document used for indexing.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Index      int
	Metadata   map[string]string
}

// SourceChunk is a retrieved passage of the report together with its
// provenance. Embedding is carried through search so the re-ranker can
// compare candidates without another round trip.
type SourceChunk struct {
	ID        string
	Content   string
	Metadata  map[string]string
	Embedding []float32
	Score     float64
}

// Answer is the generated response plus the source chunks it was
// conditioned on.
type Answer struct {
	Text    string
	Sources []SourceChunk
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion for a prompt using a hosted chat model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
