package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// LLM backend
	LLMProvider      string  `json:"llm_provider"` // anthropic | openrouter | dashscope | gemini
	AnthropicAPIKey  string  `json:"anthropic_api_key"`
	OpenRouterAPIKey string  `json:"openrouter_api_key"`
	DashScopeAPIKey  string  `json:"dashscope_api_key"`
	GeminiAPIKey     string  `json:"gemini_api_key"`
	AnthropicBaseURL string  `json:"anthropic_base_url"` // override for custom proxy
	PrimaryModel     string  `json:"primary_model"`      // openrouter model ID
	AnthropicModel   string  `json:"anthropic_model"`
	DashScopeModel   string  `json:"dashscope_model"`
	GeminiModel      string  `json:"gemini_model"`
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`

	// Agent
	AgentTimeout int    `json:"agent_timeout"` // seconds
	DocsPath     string `json:"docs_path"`
	LogsPath     string `json:"logs_path"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		LLMProvider:        DefaultLLMProvider,
		PrimaryModel:       DefaultPrimaryModel,
		AnthropicModel:     DefaultAnthropicModel,
		DashScopeModel:     DefaultDashScopeModel,
		GeminiModel:        DefaultGeminiModel,
		Temperature:        DefaultTemperature,
		MaxTokens:          DefaultMaxTokens,
		AgentTimeout:       DefaultAgentTimeout,
		DocsPath:           DefaultDocsPath,
		LogsPath:           DefaultLogsPath,
	}

	// Load from JSON config file if specified
	if path := getEnv("PROMPTFORGE_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// APIKeyFor returns the credential configured for an LLM provider tag, or
// an empty string when none is set.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openrouter":
		return c.OpenRouterAPIKey
	case "dashscope":
		return c.DashScopeAPIKey
	case "gemini":
		return c.GeminiAPIKey
	}
	return ""
}

// ModelFor returns the configured model identifier for an LLM provider tag.
func (c *Config) ModelFor(provider string) string {
	switch provider {
	case "anthropic":
		return c.AnthropicModel
	case "dashscope":
		return c.DashScopeModel
	case "gemini":
		return c.GeminiModel
	}
	return c.PrimaryModel
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("PROMPTFORGE_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("PROMPTFORGE_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("PROMPTFORGE_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("PROMPTFORGE_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("PROMPTFORGE_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("PROMPTFORGE_DOCS_PATH", ""); v != "" {
		cfg.DocsPath = v
	}
	if v := getEnv("PROMPTFORGE_LOGS_PATH", ""); v != "" {
		cfg.LogsPath = v
	}
	if v := getEnv("LLM_PROVIDER", ""); v != "" {
		cfg.LLMProvider = strings.ToLower(v)
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("OPENROUTER_API_KEY", ""); v != "" {
		cfg.OpenRouterAPIKey = v
	}
	if v := getEnv("DASHSCOPE_API_KEY", ""); v != "" {
		cfg.DashScopeAPIKey = v
	}
	if v := getEnv("GEMINI_API_KEY", ""); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("PRIMARY_MODEL", ""); v != "" {
		cfg.PrimaryModel = v
	}
	if v := getEnv("ANTHROPIC_MODEL", ""); v != "" {
		cfg.AnthropicModel = v
	}
	if v := getEnv("DASHSCOPE_MODEL", ""); v != "" {
		cfg.DashScopeModel = v
	}
	if v := getEnv("GEMINI_MODEL", ""); v != "" {
		cfg.GeminiModel = v
	}
	if v := getEnv("DEFAULT_TEMPERATURE", ""); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = t
		}
	}
	if v := getEnv("DEFAULT_MAX_TOKENS", ""); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = m
		}
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("AGENT_TIMEOUT", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.AgentTimeout = t
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
