package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultLLMProvider    = "openrouter"
	DefaultPrimaryModel   = "anthropic/claude-opus-4.5"
	DefaultAnthropicModel = "claude-opus-4-5-20251101"
	DefaultDashScopeModel = "qwen-max"
	DefaultGeminiModel    = "gemini-2.0-flash"

	DefaultTemperature = 0.3
	DefaultMaxTokens   = 16384

	DefaultAgentTimeout = 300 // seconds

	DefaultDocsPath = "docs"
	DefaultLogsPath = "logs"

	DefaultCORSMaxAge = 300
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
