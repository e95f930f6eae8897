package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// PromptChange describes one modification the agent made to the prompt.
type PromptChange struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// LogEntry is one agent activity record, as exposed over the API. Content
// is truncated to a preview; the full text lives in the per-run file log.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	ElapsedMS int64                  `json:"elapsed_ms"`
	Type      string                 `json:"type"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// OptimizedPrompt is the result of one optimization run and the only value
// the agent returns across the core boundary. On failure Prompt carries the
// original text unchanged.
type OptimizedPrompt struct {
	Provider  string         `json:"provider"`
	Prompt    string         `json:"prompt"`
	Changes   []PromptChange `json:"changes"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	AgentLogs []LogEntry     `json:"agent_logs,omitempty"`
}

// ProvidersResponse is returned by GET /api/v1/providers
type ProvidersResponse struct {
	Providers []string `json:"providers"`
}
