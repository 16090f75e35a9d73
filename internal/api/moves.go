package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pcte/equiptrack/internal/audit"
	"github.com/pcte/equiptrack/internal/condition"
	"github.com/pcte/equiptrack/internal/model"
	"github.com/pcte/equiptrack/internal/store"
)

// MovesHandler handles move-log endpoints.
type MovesHandler struct {
	Repo *store.Repository
}

// List handles GET /api/moves. With ?effective=true the move log is returned
// with audit corrections replayed; ?equipment= filters by equipment id.
func (h *MovesHandler) List(w http.ResponseWriter, r *http.Request) {
	state := h.Repo.State()
	moves := state.Moves
	if equipmentID := r.URL.Query().Get("equipment"); equipmentID != "" {
		filtered := make([]model.Move, 0, len(moves))
		for _, mv := range moves {
			if mv.EquipmentID == equipmentID {
				filtered = append(filtered, mv)
			}
		}
		moves = filtered
	}

	if r.URL.Query().Get("effective") == "true" {
		jsonResponse(w, http.StatusOK, audit.ApplyCorrections(moves, state.Corrections))
		return
	}
	if moves == nil {
		moves = []model.Move{}
	}
	jsonResponse(w, http.StatusOK, moves)
}

// Record handles POST /api/moves.
func (h *MovesHandler) Record(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.Repo.RecordMove)
}

// RecordCalibration handles POST /api/moves/calibration.
func (h *MovesHandler) RecordCalibration(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.Repo.RecordCalibration)
}

// RecordSubscription handles POST /api/moves/subscription.
func (h *MovesHandler) RecordSubscription(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.Repo.RecordSubscriptionUpdate)
}

// record decodes a move payload, defaults its timestamp, applies the given
// repository operation, and re-derives cached conditions when the move
// carries a condition payload.
func (h *MovesHandler) record(w http.ResponseWriter, r *http.Request, op func(context.Context, model.Move) (*model.AppState, error)) {
	var payload model.Move
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Timestamp == "" {
		payload.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	}

	state, err := op(r.Context(), payload)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to record move")
		return
	}

	if payload.Condition != nil {
		if state, err = h.Repo.Mutate(r.Context(), condition.SyncEquipment); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to sync conditions")
			return
		}
	}
	jsonResponse(w, http.StatusCreated, state.Moves[0])
}

// Receipt handles POST /api/moves/{id}/receipt: the goods-received
// augmentation of an existing move.
func (h *MovesHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	var receipt store.Patch
	if err := decodeJSON(r, &receipt); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.Repo.RecordReceipt(r.Context(), r.PathValue("id"), receipt)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to record receipt")
		return
	}
	jsonResponse(w, http.StatusOK, state.Moves)
}

// Archive handles POST /api/moves/archive (admin): marks every move
// archived.
func (h *MovesHandler) Archive(w http.ResponseWriter, r *http.Request) {
	state, err := h.Repo.ArchiveHistory(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to archive history")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"archived": len(state.Moves)})
}
