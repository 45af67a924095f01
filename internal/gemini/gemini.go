package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps the hosted Gemini API for both embeddings and chat
// completions. One client serves both roles so the process holds a single
// connection to the service.
type Client struct {
	client     *genai.Client
	embedModel string
	chatModel  string
}

// Config configures the Gemini client.
type Config struct {
	APIKey         string
	EmbeddingModel string
	ChatModel      string
}

// NewClient creates a Gemini client. The API key must be non-empty.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is empty")
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "embedding-001"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gemini-2.0-flash-exp"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{
		client:     client,
		embedModel: cfg.EmbeddingModel,
		chatModel:  cfg.ChatModel,
	}, nil
}

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	em := c.client.EmbeddingModel(c.embedModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini: embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, errors.New("gemini: empty embedding returned")
	}
	return res.Embedding.Values, nil
}

// Generate produces a completion for the prompt using the chat model.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	gm := c.client.GenerativeModel(c.chatModel)
	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: no candidates returned")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", errors.New("gemini: candidate contained no text")
	}
	return answer, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}
