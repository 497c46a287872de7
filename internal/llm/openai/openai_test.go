// internal/llm/openai/openai_test.go
package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newthinker/marketbrief/internal/llm"
)

func TestProvider_ImplementsInterface(t *testing.T) {
	var _ llm.Provider = (*Provider)(nil)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("", "model", "")
	if err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestNew_DefaultModel(t *testing.T) {
	p, err := New("key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %s", p.model)
	}
}

func TestChat_CompatibleBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Markets look steady."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 6}
		}`))
	}))
	defer server.Close()

	p, err := New("test-token", "meta-llama/Meta-Llama-3.1-8B-Instruct", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Chat(context.Background(), llm.ChatRequest{
		SystemPrompt: "You are a financial assistant.",
		Messages:     []llm.Message{{Role: "user", Content: "Summarize the market."}},
		MaxTokens:    400,
		Temperature:  0.6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "Markets look steady." {
		t.Errorf("unexpected content: %q", resp.Content)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 6 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}
