// internal/llm/factory/factory.go
package factory

import (
	"fmt"

	"github.com/newthinker/marketbrief/internal/config"
	"github.com/newthinker/marketbrief/internal/core"
	"github.com/newthinker/marketbrief/internal/llm"
	"github.com/newthinker/marketbrief/internal/llm/claude"
	"github.com/newthinker/marketbrief/internal/llm/ollama"
	"github.com/newthinker/marketbrief/internal/llm/openai"
)

// New creates an LLM provider based on configuration. No provider
// configured yields (nil, nil): the summarizer treats a nil provider
// as "not configured" and degrades instead of failing. A configured
// provider with a missing credential is ErrMissingCredential so the
// caller can degrade with an explicit reason.
func New(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "claude":
		if cfg.Claude.APIKey == "" {
			return nil, core.ErrMissingCredential
		}
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, core.ErrMissingCredential
		}
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
