package handler

import (
	"net/http"

	"github.com/bethneyQQ/prompt-forge/internal/docs"
	"github.com/bethneyQQ/prompt-forge/internal/models"
)

// ProvidersHandler handles GET /api/v1/providers
type ProvidersHandler struct {
	store *docs.Store
}

func NewProvidersHandler(store *docs.Store) *ProvidersHandler {
	return &ProvidersHandler{store: store}
}

// List returns the providers that have documentation available, i.e. the
// valid targets for an optimization request.
func (h *ProvidersHandler) List(w http.ResponseWriter, r *http.Request) {
	providers := h.store.Providers()
	if providers == nil {
		providers = []string{}
	}
	models.WriteJSON(w, http.StatusOK, models.ProvidersResponse{Providers: providers})
}
