package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/chunker"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/config"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/gemini"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/report"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/vectorstore/chromem"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: sustainability-index [--config=config.yaml] report.pdf [more files ...]")
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	apiKey, err := cfg.APIKey()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	llm, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         apiKey,
		EmbeddingModel: cfg.Models.Embedding,
		ChatModel:      cfg.Models.Chat,
	})
	if err != nil {
		log.Fatalf("failed to initialize Gemini client: %v", err)
	}
	defer llm.Close()

	store, err := chromem.OpenOrCreate(chromem.Config{
		Path:       cfg.Store.Path,
		Collection: cfg.Store.Collection,
	})
	if err != nil {
		log.Fatalf("failed to open vector store: %v", err)
	}

	ch, err := chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	if err != nil {
		log.Fatalf("failed to build chunker: %v", err)
	}

	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	for _, path := range inputs {
		chunks, err := indexFile(ctx, path, ch, llm, store, timeout)
		if err != nil {
			log.Fatalf("failed to index %s: %v", path, err)
		}
		log.Printf("indexed %s: %d chunks", path, chunks)
	}
	log.Printf("store %s now holds %d chunks", cfg.Store.Path, store.Count())
}

func indexFile(ctx context.Context, path string, ch domain.Chunker, llm domain.Embedder, store *chromem.Store, timeout time.Duration) (int, error) {
	pages, err := report.Pages(path)
	if err != nil {
		return 0, err
	}

	base := filepath.Base(path)
	total := 0
	for pageNo, text := range pages {
		text = report.Sanitize(text)
		if text == "" {
			continue
		}
		doc := domain.Document{
			ID:      fmt.Sprintf("%s-p%d", base, pageNo+1),
			Path:    path,
			Content: text,
		}
		chunks, err := ch.Chunk(doc)
		if err != nil {
			return total, err
		}
		vectors := make([][]float32, len(chunks))
		for i := range chunks {
			chunks[i].Metadata = map[string]string{
				"source": base,
				"page":   strconv.Itoa(pageNo + 1),
				"chunk":  strconv.Itoa(chunks[i].Index),
			}
			embedCtx, cancel := context.WithTimeout(ctx, timeout)
			vec, err := llm.Embed(embedCtx, chunks[i].Text)
			cancel()
			if err != nil {
				return total, fmt.Errorf("embed chunk %s: %w", chunks[i].ChunkID, err)
			}
			vectors[i] = vec
		}
		if err := store.Upsert(ctx, chunks, vectors); err != nil {
			return total, err
		}
		total += len(chunks)
	}
	return total, nil
}
