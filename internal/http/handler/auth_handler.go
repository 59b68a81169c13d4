package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/salestrack/inquiry-api/internal/auth"
	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.AuthConfig
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, cfg *config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		logger:      logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Verifies username and password and returns an access token. The token is also set as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError "Invalid credentials"
// @Failure 403 {object} domain.APIError "Inactive user"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "log in")
		return
	}

	if h.cfg.CookieName != "" {
		expires, _ := time.Parse(time.RFC3339, resp.ExpiresAt)
		http.SetCookie(w, &http.Cookie{
			Name:     h.cfg.CookieName,
			Value:    resp.AccessToken,
			Path:     "/",
			Expires:  expires,
			HttpOnly: true,
			Secure:   h.cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Description Clears the access token cookie
// @Tags Auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cfg.CookieName != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cfg.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Get current authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError "API key callers have no user record"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if userCtx.System {
		respondWithError(w, http.StatusNotFound, "API key callers have no user record")
		return
	}

	user, err := h.authService.Me(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err, "get current user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
