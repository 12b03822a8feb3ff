package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lvsiyuan/personal-site/internal/auth"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/service"
)

// AuthHandler exposes the admin console login endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, logger: logger}
}

type adminLoginResponse struct {
	Token string         `json:"token"`
	User  *model.Profile `json:"user"`
}

// HandleAdminLogin verifies credentials plus the admin role and issues a
// session token. The token is returned in the body for API clients and also
// set as an HttpOnly cookie for the admin pages.
//
// HTTP: POST /api/admin/login
func (h *AuthHandler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	profile, token, err := h.auth.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, adminLoginResponse{Token: token, User: profile})
}
