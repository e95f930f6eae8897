package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider selects which vendor adapter backs a ChatClient.
type Provider string

const (
	ProviderAnthropic  Provider = "anthropic"
	ProviderOpenRouter Provider = "openrouter"
	ProviderDashScope  Provider = "dashscope"
	ProviderGemini     Provider = "gemini"
)

// ErrUnknownProvider is returned when a provider tag is not one of the
// supported constants.
var ErrUnknownProvider = errors.New("unknown llm provider")

// ParseProvider validates a provider tag at the boundary.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderAnthropic, ProviderOpenRouter, ProviderDashScope, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// ChatClient abstracts one vendor's chat-completion API. Implementations
// hold only construction-time settings (model, temperature, token limit);
// all per-call state is passed as arguments, so a client is safe to share
// across concurrent runs.
type ChatClient interface {
	// Chat sends the full conversation plus an optional system instruction
	// and tool set, and blocks for one network round-trip. Transport and
	// vendor errors are returned unretried.
	Chat(ctx context.Context, messages []Message, system string, tools []ToolDefinition) (*Response, error)

	// Provider returns the backing vendor tag.
	Provider() Provider

	// Model returns the model identifier in use.
	Model() string
}

// ClientConfig carries the construction-time settings for an adapter.
type ClientConfig struct {
	Provider    Provider
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	BaseURL     string // override for proxies; ignored by gemini
}

// New builds the adapter for cfg.Provider.
func New(ctx context.Context, cfg ClientConfig) (ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: api key required for provider %q", cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	case ProviderOpenRouter:
		return newOpenRouterClient(cfg), nil
	case ProviderDashScope:
		return newDashScopeClient(cfg), nil
	case ProviderGemini:
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
