package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/config"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/gemini"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/rag"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/tui"
	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/vectorstore/chromem"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The key must be present before any network client is constructed.
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

	store, err := chromem.Open(chromem.Config{
		Path:       cfg.Store.Path,
		Collection: cfg.Store.Collection,
	})
	if err != nil {
		log.Fatalf("failed to open vector store: %v", err)
	}

	pipeline := rag.New(llm, llm, store, rag.Options{
		TopK:   cfg.Retriever.TopK,
		FetchK: cfg.Retriever.FetchK,
		Lambda: cfg.Retriever.Lambda,
	})

	m := tui.New(pipeline, tui.Options{
		PreviewChars: cfg.UI.PreviewChars,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
