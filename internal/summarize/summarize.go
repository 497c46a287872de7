package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/newthinker/marketbrief/internal/llm"
)

// NotConfiguredSentinel is returned when no inference provider is
// configured. No network call is attempted in that case.
const NotConfiguredSentinel = "LLM not configured. Set an inference API token to enable market summaries."

// DefaultSystemPrompt is the fixed system instruction for market summaries.
const DefaultSystemPrompt = "You are a financial assistant that summarizes market trends."

const (
	defaultMaxTokens   = 400
	defaultTemperature = 0.6
)

// Config holds summarizer settings.
type Config struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// Summarizer turns an assembled prompt into a short market summary via
// a chat-completion provider. One synchronous call, no retry, no
// streaming; every failure is converted to a user-visible string at
// this boundary so no error crosses into the pipeline.
type Summarizer struct {
	provider    llm.Provider // nil means not configured
	system      string
	maxTokens   int
	temperature float64
}

// New creates a Summarizer. A nil provider is valid and yields the
// not-configured sentinel on every call.
func New(provider llm.Provider, cfg Config) *Summarizer {
	system := cfg.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Summarizer{
		provider:    provider,
		system:      system,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Configured reports whether an inference provider is available.
func (s *Summarizer) Configured() bool {
	return s.provider != nil
}

// Summarize sends the prompt as the user turn and returns the model's
// reply plus token usage. The returned string is always printable:
// sentinel when unconfigured, formatted error text on failure.
func (s *Summarizer) Summarize(ctx context.Context, prompt string) (string, llm.Usage) {
	if s.provider == nil {
		return NotConfiguredSentinel, llm.Usage{}
	}

	resp, err := s.provider.Chat(ctx, llm.ChatRequest{
		SystemPrompt: s.system,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return fmt.Sprintf("Error calling %s chat API: %v", s.provider.Name(), err), llm.Usage{}
	}

	return extractContent(resp), resp.Usage
}

// extractContent normalizes the provider reply to plain text. Fallback
// order, checked once here rather than at call sites:
//  1. the response content field, trimmed;
//  2. a stringified dump of the whole response when content is empty,
//     so a nonstandard provider shape still yields something readable.
func extractContent(resp *llm.ChatResponse) string {
	if resp == nil {
		return ""
	}
	if content := strings.TrimSpace(resp.Content); content != "" {
		return content
	}
	return fmt.Sprintf("%+v", *resp)
}
