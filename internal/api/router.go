package api

import (
	"database/sql"
	"net/http"

	"github.com/pcte/equiptrack/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(repo *store.Repository, db *sql.DB, secret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Secret: secret}
	stateHandler := &StateHandler{Repo: repo}
	equipmentHandler := &EquipmentHandler{Repo: repo, DB: db}
	movesHandler := &MovesHandler{Repo: repo}
	correctionsHandler := &CorrectionsHandler{Repo: repo}

	authMW := AuthMiddleware(secret)

	// Public: login and passcode bootstrap.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("PUT /api/auth/passcode", authHandler.SetPasscode)

	// Admin mode.
	mux.Handle("GET /api/admin/status", authMW(http.HandlerFunc(authHandler.Status)))
	mux.Handle("POST /api/admin/enable", authMW(http.HandlerFunc(authHandler.EnableAdminMode)))
	mux.Handle("POST /api/admin/disable", authMW(http.HandlerFunc(authHandler.DisableAdminMode)))

	// State export.
	mux.Handle("GET /api/state", authMW(http.HandlerFunc(stateHandler.Get)))

	// Equipment.
	mux.Handle("GET /api/equipment", authMW(http.HandlerFunc(equipmentHandler.List)))
	mux.Handle("POST /api/equipment", authMW(http.HandlerFunc(equipmentHandler.Create)))
	mux.Handle("POST /api/equipment/import", authMW(http.HandlerFunc(equipmentHandler.Import)))
	mux.Handle("POST /api/equipment/condition/sync", authMW(http.HandlerFunc(equipmentHandler.SyncConditions)))
	mux.Handle("PATCH /api/equipment/{id}", authMW(http.HandlerFunc(equipmentHandler.Update)))
	mux.Handle("GET /api/equipment/{id}/condition", authMW(http.HandlerFunc(equipmentHandler.Condition)))
	mux.Handle("PUT /api/equipment/{id}/photo", authMW(http.HandlerFunc(equipmentHandler.UploadPhoto)))
	mux.Handle("GET /api/equipment/{id}/photo", authMW(http.HandlerFunc(equipmentHandler.GetPhoto)))

	// Move log.
	mux.Handle("GET /api/moves", authMW(http.HandlerFunc(movesHandler.List)))
	mux.Handle("POST /api/moves", authMW(http.HandlerFunc(movesHandler.Record)))
	mux.Handle("POST /api/moves/calibration", authMW(http.HandlerFunc(movesHandler.RecordCalibration)))
	mux.Handle("POST /api/moves/subscription", authMW(http.HandlerFunc(movesHandler.RecordSubscription)))
	mux.Handle("POST /api/moves/{id}/receipt", authMW(http.HandlerFunc(movesHandler.Receipt)))
	mux.Handle("POST /api/moves/archive", authMW(RequireAdmin(http.HandlerFunc(movesHandler.Archive))))

	// Audit corrections: reads for any session, writes admin only.
	mux.Handle("GET /api/corrections", authMW(http.HandlerFunc(correctionsHandler.List)))
	mux.Handle("POST /api/corrections", authMW(RequireAdmin(http.HandlerFunc(correctionsHandler.Create))))

	return mux
}
