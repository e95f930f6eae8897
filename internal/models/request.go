package models

// OptimizeRequest for POST /api/v1/optimize
type OptimizeRequest struct {
	// Prompt is the text to optimize.
	Prompt string `json:"prompt"`
	// Provider is the target the prompt is optimized for (the docs
	// namespace: "openai", "anthropic", "google", "kimi", ...).
	Provider string `json:"provider"`
	// LLMProvider optionally overrides which backend runs the agent
	// ("anthropic", "openrouter", "dashscope", "gemini"). Empty uses the
	// configured default.
	LLMProvider string `json:"llm_provider,omitempty"`
	// Timeout bounds the whole run, in seconds.
	Timeout int `json:"timeout"`
}

const MaxPromptLength = 50000

func (r *OptimizeRequest) SetDefaults() {
	if r.Timeout == 0 {
		r.Timeout = 300
	}
	if r.Timeout < 10 {
		r.Timeout = 10
	}
	if r.Timeout > 600 {
		r.Timeout = 600
	}
}

// Validate returns an empty string when the request is well-formed, or a
// client-facing message describing the first problem found.
func (r *OptimizeRequest) Validate() string {
	if r.Prompt == "" {
		return "prompt is required"
	}
	if len(r.Prompt) > MaxPromptLength {
		return "prompt too long"
	}
	if r.Provider == "" {
		return "provider is required"
	}
	return ""
}
