package chunker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

// SentenceChunker splits text into sentence-based chunks with overlap.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	tokenizer         *sentences.DefaultSentenceTokenizer
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) (*SentenceChunker, error) {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("sentence tokenizer: %w", err)
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		tokenizer:         tokenizer,
	}, nil
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	var parts []string
	for _, s := range c.tokenizer.Tokenize(document.Content) {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		trimmed := strings.TrimSpace(document.Content)
		if trimmed == "" {
			return nil, nil
		}
		parts = []string{trimmed}
	}

	var chunks []domain.Chunk
	i := 0
	idx := 0
	for i < len(parts) {
		end := i + c.sentencesPerChunk
		if end > len(parts) {
			end = len(parts)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Text:       strings.Join(parts[i:end], " "),
			Index:      idx,
		})
		if end == len(parts) {
			break
		}
		i = end - c.overlapSentences
		idx++
	}
	return chunks, nil
}
