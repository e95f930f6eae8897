package handler

import (
	"fmt"
	"net/http"

	"github.com/bethneyQQ/prompt-forge/internal/docs"
	"github.com/bethneyQQ/prompt-forge/internal/models"
)

const version = "1.0.0"

// HealthHandler handles GET /health with a documentation store check
type HealthHandler struct {
	store       *docs.Store
	llmProvider string // empty when no backend is configured
}

func NewHealthHandler(store *docs.Store, llmProvider string) *HealthHandler {
	return &HealthHandler{store: store, llmProvider: llmProvider}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	if providers := h.store.Providers(); len(providers) > 0 {
		checks["docs"] = fmt.Sprintf("ok (%d providers)", len(providers))
	} else {
		checks["docs"] = "no provider documentation found"
		overallStatus = "degraded"
	}

	if h.llmProvider != "" {
		checks["llm"] = "configured: " + h.llmProvider
	} else {
		checks["llm"] = "no provider configured"
		overallStatus = "degraded"
	}

	code := http.StatusOK
	if overallStatus != "healthy" {
		code = http.StatusServiceUnavailable
	}
	models.WriteJSON(w, code, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
