package llm

// DashScope exposes an OpenAI-compatible endpoint for the Qwen models, so
// the adapter reuses the OpenRouter translation with DashScope's base URL.
// qwen-max caps completion tokens at 8192 regardless of what the caller
// configured.

const (
	dashScopeBaseURL   = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	dashScopeMaxTokens = 8192
)

func newDashScopeClient(cfg ClientConfig) *openRouterClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = dashScopeBaseURL
	}
	if cfg.MaxTokens > dashScopeMaxTokens || cfg.MaxTokens == 0 {
		cfg.MaxTokens = dashScopeMaxTokens
	}
	return newCompatClient(cfg, ProviderDashScope, baseURL)
}
