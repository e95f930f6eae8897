package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethneyQQ/prompt-forge/internal/agent"
	"github.com/bethneyQQ/prompt-forge/internal/docs"
	"github.com/bethneyQQ/prompt-forge/internal/handler"
	"github.com/bethneyQQ/prompt-forge/internal/llm"
	"github.com/bethneyQQ/prompt-forge/internal/models"
	"github.com/bethneyQQ/prompt-forge/internal/tools"
)

// stubClient submits a fixed optimization on the first Chat call.
type stubClient struct{}

func (stubClient) Chat(ctx context.Context, messages []llm.Message, system string, defs []llm.ToolDefinition) (*llm.Response, error) {
	return &llm.Response{
		StopReason: "tool_use",
		ToolCalls: []llm.ToolCall{{
			ID:   "call_1",
			Name: "submit_optimization",
			Arguments: map[string]interface{}{
				"optimized_prompt": "A restructured prompt with explicit output format.",
				"changes": []interface{}{
					map[string]interface{}{"category": "structure", "description": "Added output format"},
				},
			},
		}},
	}, nil
}

func (stubClient) Provider() llm.Provider { return llm.ProviderOpenRouter }
func (stubClient) Model() string          { return "test-model" }

func newDocsStore(t *testing.T) *docs.Store {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "openai")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompting.md"), []byte("Be specific."), 0o644); err != nil {
		t.Fatal(err)
	}
	return docs.NewStore(root)
}

func newOptimizeHandler(t *testing.T) *handler.OptimizeHandler {
	t.Helper()
	executor := tools.NewExecutor(newDocsStore(t))
	optimizer := agent.NewOptimizer(stubClient{}, executor, "")
	return handler.NewOptimizeHandler(
		map[llm.Provider]*agent.Optimizer{llm.ProviderOpenRouter: optimizer},
		llm.ProviderOpenRouter,
		300,
	)
}

func postOptimize(t *testing.T, h *handler.OptimizeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

func TestOptimizeSuccess(t *testing.T) {
	rec := postOptimize(t, newOptimizeHandler(t), `{"prompt":"summarize this article","provider":"openai"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result models.OptimizedPrompt
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Errorf("expected success, got error %q", result.Error)
	}
	if result.Prompt != "A restructured prompt with explicit output format." {
		t.Errorf("unexpected prompt: %q", result.Prompt)
	}
	if result.Provider != "openai" {
		t.Errorf("provider = %q", result.Provider)
	}
	if len(result.AgentLogs) == 0 {
		t.Error("expected agent logs in the response")
	}
}

func TestOptimizeMissingPrompt(t *testing.T) {
	rec := postOptimize(t, newOptimizeHandler(t), `{"provider":"openai"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "prompt is required") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestOptimizeMissingProvider(t *testing.T) {
	rec := postOptimize(t, newOptimizeHandler(t), `{"prompt":"hello world"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOptimizeInvalidBody(t *testing.T) {
	rec := postOptimize(t, newOptimizeHandler(t), `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOptimizeUnknownLLMProvider(t *testing.T) {
	rec := postOptimize(t, newOptimizeHandler(t), `{"prompt":"hello world","provider":"openai","llm_provider":"cohere"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cohere") {
		t.Errorf("error should name the provider: %s", rec.Body.String())
	}
}

// deadlineClient records the context deadline the handler ran the agent
// under, then submits immediately.
type deadlineClient struct {
	deadline time.Time
	hadOne   bool
}

func (c *deadlineClient) Chat(ctx context.Context, messages []llm.Message, system string, defs []llm.ToolDefinition) (*llm.Response, error) {
	c.deadline, c.hadOne = ctx.Deadline()
	return stubClient{}.Chat(ctx, messages, system, defs)
}

func (c *deadlineClient) Provider() llm.Provider { return llm.ProviderOpenRouter }
func (c *deadlineClient) Model() string          { return "test-model" }

func TestOptimizeTimeoutCappedByAgentTimeout(t *testing.T) {
	// The server's write timeout is derived from the configured agent
	// timeout, so a request must never be allowed to run longer than that
	// cap no matter what timeout it asks for.
	client := &deadlineClient{}
	executor := tools.NewExecutor(newDocsStore(t))
	optimizer := agent.NewOptimizer(client, executor, "")
	h := handler.NewOptimizeHandler(
		map[llm.Provider]*agent.Optimizer{llm.ProviderOpenRouter: optimizer},
		llm.ProviderOpenRouter,
		60,
	)

	start := time.Now()
	rec := postOptimize(t, h, `{"prompt":"summarize this article","provider":"openai","timeout":600}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !client.hadOne {
		t.Fatal("agent context should carry a deadline")
	}
	if remaining := client.deadline.Sub(start); remaining > 61*time.Second {
		t.Errorf("deadline %v out exceeds the 60s cap", remaining)
	} else if remaining <= 0 {
		t.Errorf("deadline %v already expired", remaining)
	}
}

func TestOptimizeUnconfiguredBackend(t *testing.T) {
	rec := postOptimize(t, newOptimizeHandler(t), `{"prompt":"hello world","provider":"openai","llm_provider":"gemini"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestProvidersList(t *testing.T) {
	h := handler.NewProvidersHandler(newDocsStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.ProvidersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Providers) != 1 || resp.Providers[0] != "openai" {
		t.Errorf("providers = %v", resp.Providers)
	}
}

func TestHealthHealthy(t *testing.T) {
	h := handler.NewHealthHandler(newDocsStore(t), "openrouter")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestHealthDegradedWithoutLLM(t *testing.T) {
	h := handler.NewHealthHandler(newDocsStore(t), "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
