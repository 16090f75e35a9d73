package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/pcte/equiptrack/internal/auth"
)

// AuthHandler handles the passcode gate and admin-mode endpoints.
type AuthHandler struct {
	DB     *sql.DB
	Secret string
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	Token string `json:"token"`
	Admin bool   `json:"admin"`
}

type setPasscodeRequest struct {
	CurrentPasscode string `json:"current_passcode"`
	NewPasscode     string `json:"new_passcode"`
}

// Login handles POST /api/auth/login. The shared passcode is the only
// credential; sessions issued while admin mode is enabled carry the admin
// claim.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Passcode == "" {
		jsonError(w, http.StatusBadRequest, "passcode required")
		return
	}

	ok, err := auth.VerifyPasscode(r.Context(), h.DB, req.Passcode)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		slog.Warn("login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid passcode")
		return
	}

	admin, err := auth.IsAdminModeEnabled(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(h.Secret, admin)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("session issued", "admin", admin)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

// SetPasscode handles PUT /api/auth/passcode. Bootstrap: when no passcode is
// set yet, the first call needs no credential. Afterwards the current
// passcode must verify.
func (h *AuthHandler) SetPasscode(w http.ResponseWriter, r *http.Request) {
	var req setPasscodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NewPasscode == "" {
		jsonError(w, http.StatusBadRequest, "new passcode required")
		return
	}

	has, err := auth.HasPasscode(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if has {
		ok, err := auth.VerifyPasscode(r.Context(), h.DB, req.CurrentPasscode)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			jsonError(w, http.StatusUnauthorized, "current passcode is incorrect")
			return
		}
	}

	if err := auth.SetPasscode(r.Context(), h.DB, req.NewPasscode); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to set passcode")
		return
	}

	slog.Info("admin passcode updated")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "passcode updated"})
}

// EnableAdminMode handles POST /api/admin/enable. The passcode must be
// re-verified; on success a fresh admin session token is returned.
func (h *AuthHandler) EnableAdminMode(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := auth.VerifyPasscode(r.Context(), h.DB, req.Passcode)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		jsonError(w, http.StatusUnauthorized, "invalid passcode")
		return
	}

	if err := auth.EnableAdminMode(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to enable admin mode")
		return
	}

	token, err := auth.GenerateToken(h.Secret, true)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("admin mode enabled")
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Admin: true})
}

// DisableAdminMode handles POST /api/admin/disable.
func (h *AuthHandler) DisableAdminMode(w http.ResponseWriter, r *http.Request) {
	if err := auth.DisableAdminMode(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to disable admin mode")
		return
	}
	slog.Info("admin mode disabled")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "admin mode disabled"})
}

// Status handles GET /api/admin/status.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	has, err := auth.HasPasscode(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	enabled, err := auth.IsAdminModeEnabled(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{
		"has_passcode": has,
		"admin_mode":   enabled,
	})
}
