package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bethneyQQ/prompt-forge/internal/agent"
	"github.com/bethneyQQ/prompt-forge/internal/llm"
	"github.com/bethneyQQ/prompt-forge/internal/models"
	"github.com/rs/zerolog/log"
)

// OptimizeHandler handles POST /api/v1/optimize
type OptimizeHandler struct {
	optimizers      map[llm.Provider]*agent.Optimizer
	defaultProvider llm.Provider
	maxRunSeconds   int
}

// NewOptimizeHandler takes the optimizers built at startup, one per LLM
// provider that has a credential configured. maxRunSeconds caps the
// per-request timeout; it must stay below the server's write timeout or a
// long run finishes after the connection is already cut.
func NewOptimizeHandler(optimizers map[llm.Provider]*agent.Optimizer, defaultProvider llm.Provider, maxRunSeconds int) *OptimizeHandler {
	return &OptimizeHandler{
		optimizers:      optimizers,
		defaultProvider: defaultProvider,
		maxRunSeconds:   maxRunSeconds,
	}
}

// Optimize handles POST /api/v1/optimize
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req models.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.SetDefaults()
	if h.maxRunSeconds > 0 && req.Timeout > h.maxRunSeconds {
		req.Timeout = h.maxRunSeconds
	}

	if msg := req.Validate(); msg != "" {
		models.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	backend := h.defaultProvider
	if req.LLMProvider != "" {
		parsed, err := llm.ParseProvider(req.LLMProvider)
		if err != nil {
			models.WriteError(w, http.StatusBadRequest, "unknown llm_provider: "+req.LLMProvider)
			return
		}
		backend = parsed
	}

	optimizer, ok := h.optimizers[backend]
	if !ok {
		models.WriteError(w, http.StatusServiceUnavailable, "llm provider not configured: "+string(backend))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(req.Timeout)*time.Second)
	defer cancel()

	start := time.Now()
	result := optimizer.Optimize(ctx, req.Prompt, req.Provider)

	log.Info().
		Str("target_provider", req.Provider).
		Str("llm_provider", string(backend)).
		Bool("success", result.Success).
		Int("changes", len(result.Changes)).
		Dur("duration", time.Since(start)).
		Msg("optimization run")

	models.WriteJSON(w, http.StatusOK, result)
}
