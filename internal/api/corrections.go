package api

import (
	"log/slog"
	"net/http"

	"github.com/pcte/equiptrack/internal/model"
	"github.com/pcte/equiptrack/internal/store"
)

// CorrectionsHandler handles the audit-correction log.
type CorrectionsHandler struct {
	Repo *store.Repository
}

// List handles GET /api/corrections.
func (h *CorrectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	corrections := h.Repo.State().Corrections
	if corrections == nil {
		corrections = []model.Correction{}
	}
	jsonResponse(w, http.StatusOK, corrections)
}

// Create handles POST /api/corrections (admin). Corrections never touch the
// move they target; the effective view is derived at read time.
func (h *CorrectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.Correction
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.TargetType == "" {
		payload.TargetType = model.TargetTypeMove
	}
	if payload.TargetID == "" {
		jsonError(w, http.StatusBadRequest, "target id required")
		return
	}

	state, err := h.Repo.AddCorrection(r.Context(), payload)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to add correction")
		return
	}

	slog.Info("correction recorded", "target", payload.TargetID, "reason", payload.Reason)
	jsonResponse(w, http.StatusCreated, state.Corrections[len(state.Corrections)-1])
}
