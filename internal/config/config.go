package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreConfig points at the persistent vector store built by the indexer.
type StoreConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

// RetrieverConfig controls how many chunks are fetched and how they are
// re-ranked before generation.
type RetrieverConfig struct {
	TopK   int     `yaml:"top_k"`
	FetchK int     `yaml:"fetch_k"`
	Lambda float64 `yaml:"lambda"`
}

// ModelsConfig names the hosted Gemini models.
type ModelsConfig struct {
	Embedding string `yaml:"embedding"`
	Chat      string `yaml:"chat"`
}

// ChunkerConfig configures how report documents are split during indexing.
type ChunkerConfig struct {
	SentencesPerChunk int `yaml:"sentences_per_chunk"`
	OverlapSentences  int `yaml:"overlap_sentences"`
}

// UIConfig holds presentation knobs.
type UIConfig struct {
	PreviewChars int `yaml:"preview_chars"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	APIKeyEnv   string          `yaml:"api_key_env"`
	TimeoutSecs int             `yaml:"timeout_secs"`
	Store       StoreConfig     `yaml:"store"`
	Retriever   RetrieverConfig `yaml:"retriever"`
	Models      ModelsConfig    `yaml:"models"`
	Chunker     ChunkerConfig   `yaml:"chunker"`
	UI          UIConfig        `yaml:"ui"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// APIKey resolves the Google API key from the configured environment
// variable. The key is required before any network client is constructed.
func (c *AppConfig) APIKey() (string, error) {
	key := os.Getenv(c.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("google API key not found: set %s in the environment or a .env file", c.APIKeyEnv)
	}
	return key, nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GOOGLE_API_KEY"
	}
	if cfg.TimeoutSecs == 0 {
		cfg.TimeoutSecs = 60
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./chroma_db"
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = "sustainability_report"
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = 3
	}
	if cfg.Retriever.FetchK == 0 {
		cfg.Retriever.FetchK = 12
	}
	if cfg.Retriever.Lambda == 0 {
		// Pure relevance; diversity re-ranking is effectively off.
		cfg.Retriever.Lambda = 1.0
	}
	if cfg.Models.Embedding == "" {
		cfg.Models.Embedding = "embedding-001"
	}
	if cfg.Models.Chat == "" {
		cfg.Models.Chat = "gemini-2.0-flash-exp"
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 5
	}
	if cfg.Chunker.OverlapSentences == 0 {
		cfg.Chunker.OverlapSentences = 1
	}
	if cfg.UI.PreviewChars == 0 {
		cfg.UI.PreviewChars = 200
	}
}
