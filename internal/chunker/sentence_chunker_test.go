package chunker

import (
	"strings"
	"testing"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

func TestChunk_WindowsWithOverlap(t *testing.T) {
	c, err := NewSentenceChunker(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	doc := domain.Document{
		ID:      "doc",
		Content: "First sentence here. Second sentence follows. Third one too. Fourth closes it.",
	}
	chunks, err := c.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "First sentence") {
		t.Errorf("first chunk missing first sentence: %q", chunks[0].Text)
	}
	// Overlap of one sentence: the last sentence of a chunk opens the next.
	last := lastSentence(chunks[0].Text)
	if !strings.HasPrefix(chunks[1].Text, last) {
		t.Errorf("expected chunk 1 to start with %q, got %q", last, chunks[1].Text)
	}
	for i, ch := range chunks {
		if ch.DocumentID != "doc" {
			t.Errorf("chunk %d has wrong document id %q", i, ch.DocumentID)
		}
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if ch.ChunkID == "" {
			t.Errorf("chunk %d missing id", i)
		}
	}
}

func TestChunk_EmptyDocument(t *testing.T) {
	c, err := NewSentenceChunker(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := c.Chunk(domain.Document{ID: "empty", Content: "   \n  "})
	if err != nil {
		t.Fatal(err)
	}
	if chunks != nil {
		t.Fatalf("expected no chunks for empty document, got %d", len(chunks))
	}
}

func TestChunk_TextWithoutTerminators(t *testing.T) {
	c, err := NewSentenceChunker(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := c.Chunk(domain.Document{ID: "raw", Content: "a bare fragment with no punctuation"})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "a bare fragment with no punctuation" {
		t.Errorf("unexpected chunk text %q", chunks[0].Text)
	}
}

func TestNewSentenceChunker_ClampsOverlap(t *testing.T) {
	c, err := NewSentenceChunker(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Overlap >= window would loop forever; it must be clamped.
	doc := domain.Document{ID: "d", Content: "One. Two. Three. Four. Five. Six."}
	chunks, err := c.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 || len(chunks) > 6 {
		t.Fatalf("unexpected chunk count %d", len(chunks))
	}
}

func lastSentence(text string) string {
	idx := strings.LastIndex(strings.TrimSuffix(text, "."), ". ")
	if idx < 0 {
		return text
	}
	return text[idx+2:]
}
