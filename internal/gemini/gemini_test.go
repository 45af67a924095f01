package gemini

import (
	"context"
	"testing"
)

func TestNewClient_EmptyKeyFails(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestNewClient_DefaultModels(t *testing.T) {
	c, err := NewClient(context.Background(), Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()
	if c.embedModel != "embedding-001" {
		t.Errorf("expected default embedding model, got %q", c.embedModel)
	}
	if c.chatModel != "gemini-2.0-flash-exp" {
		t.Errorf("expected default chat model, got %q", c.chatModel)
	}
}
