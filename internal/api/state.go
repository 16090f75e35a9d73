package api

import (
	"net/http"

	"github.com/pcte/equiptrack/internal/store"
)

// StateHandler exposes the full application state.
type StateHandler struct {
	Repo *store.Repository
}

// Get handles GET /api/state: the complete snapshot, for export or a client
// bootstrapping its view.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Repo.State())
}
