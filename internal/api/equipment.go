package api

import (
	"database/sql"
	"net/http"

	"github.com/pcte/equiptrack/internal/condition"
	"github.com/pcte/equiptrack/internal/imaging"
	"github.com/pcte/equiptrack/internal/model"
	"github.com/pcte/equiptrack/internal/store"
)

// EquipmentHandler handles equipment endpoints.
type EquipmentHandler struct {
	Repo *store.Repository
	DB   *sql.DB
}

// List handles GET /api/equipment.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	state := h.Repo.State()
	equipment := state.Equipment
	if location := r.URL.Query().Get("location"); location != "" {
		filtered := make([]model.Equipment, 0, len(equipment))
		for _, item := range equipment {
			if item.Location == location {
				filtered = append(filtered, item)
			}
		}
		equipment = filtered
	}
	if equipment == nil {
		equipment = []model.Equipment{}
	}
	jsonResponse(w, http.StatusOK, equipment)
}

// Create handles POST /api/equipment.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.Equipment
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	payload.Status = model.NormalizeStatus(payload.Status, payload.Location)

	state, err := h.Repo.AddEquipment(r.Context(), payload)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to add equipment")
		return
	}
	jsonResponse(w, http.StatusCreated, state.Equipment[len(state.Equipment)-1])
}

// Update handles PATCH /api/equipment/{id}. Unknown ids are a silent no-op,
// mirroring repository semantics.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.Patch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.Repo.UpdateEquipment(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update equipment")
		return
	}
	jsonResponse(w, http.StatusOK, state.Equipment)
}

// Import handles POST /api/equipment/import: bulk append of pre-built
// records, ids supplied by the caller.
func (h *EquipmentHandler) Import(w http.ResponseWriter, r *http.Request) {
	var rows []model.Equipment
	if err := decodeJSON(r, &rows); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.Repo.ImportEquipment(r.Context(), rows)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to import equipment")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"count": len(state.Equipment)})
}

// Condition handles GET /api/equipment/{id}/condition: the cached last
// condition check plus its display label.
func (h *EquipmentHandler) Condition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, item := range h.Repo.State().Equipment {
		if item.ID == id {
			jsonResponse(w, http.StatusOK, map[string]any{
				"rating":             condition.PillRating(item),
				"lastConditionCheck": item.LastConditionCheck,
			})
			return
		}
	}
	jsonError(w, http.StatusNotFound, "equipment not found")
}

// SyncConditions handles POST /api/equipment/condition/sync: re-derives
// every record's LastConditionCheck from the move log.
func (h *EquipmentHandler) SyncConditions(w http.ResponseWriter, r *http.Request) {
	state, err := h.Repo.Mutate(r.Context(), condition.SyncEquipment)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to sync conditions")
		return
	}
	jsonResponse(w, http.StatusOK, state.Equipment)
}

// UploadPhoto handles PUT /api/equipment/{id}/photo.
func (h *EquipmentHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.equipmentExists(id) {
		jsonError(w, http.StatusNotFound, "equipment not found")
		return
	}

	photo, err := imaging.Process(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetEquipmentPhoto(r.Context(), h.DB, id, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo stored"})
}

// GetPhoto handles GET /api/equipment/{id}/photo.
func (h *EquipmentHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetEquipmentPhoto(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo stored")
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *EquipmentHandler) equipmentExists(id string) bool {
	for _, item := range h.Repo.State().Equipment {
		if item.ID == id {
			return true
		}
	}
	return false
}
