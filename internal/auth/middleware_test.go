package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware() (*Middleware, *TokenManager) {
	cfg := &config.AuthConfig{
		JWTSecret:      "test-secret",
		Issuer:         "inquiry-api",
		AccessTokenTTL: 60,
		CookieName:     "access_token",
		APIKey:         "service-key",
	}
	tokens := NewTokenManager(cfg)
	return NewMiddleware(cfg, tokens, zap.NewNop()), tokens
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User-Type", string(userCtx.UserType))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	m, tokens := newTestMiddleware()
	token, _, err := tokens.Issue(&domain.User{ID: uuid.New(), Username: "anna", UserType: domain.UserTypeManager})
	require.NoError(t, err)

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		status   int
		userType string
	}{
		{"missing credentials", func(r *http.Request) {}, http.StatusUnauthorized, ""},
		{"bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, "manager"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: token}) }, http.StatusOK, "manager"},
		{"bad scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized, ""},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
		{"api key", func(r *http.Request) { r.Header.Set("x-api-key", "service-key") }, http.StatusOK, "admin"},
		{"wrong api key", func(r *http.Request) { r.Header.Set("x-api-key", "guess") }, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/inquiries", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			m.Authenticate(echoUser(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.userType, rec.Header().Get("X-User-Type"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	m, _ := newTestMiddleware()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	serve := func(h http.Handler, userCtx *UserContext) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if userCtx != nil {
			req = req.WithContext(WithUserContext(req.Context(), userCtx))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	customer := &UserContext{UserID: uuid.New(), UserType: domain.UserTypeCustomer}
	manager := &UserContext{UserID: uuid.New(), UserType: domain.UserTypeManager}
	admin := &UserContext{UserID: uuid.New(), UserType: domain.UserTypeAdmin}

	assert.Equal(t, http.StatusForbidden, serve(m.RequireManagerOrAdmin(ok), nil))
	assert.Equal(t, http.StatusForbidden, serve(m.RequireManagerOrAdmin(ok), customer))
	assert.Equal(t, http.StatusNoContent, serve(m.RequireManagerOrAdmin(ok), manager))
	assert.Equal(t, http.StatusForbidden, serve(m.RequireAdmin(ok), manager))
	assert.Equal(t, http.StatusNoContent, serve(m.RequireAdmin(ok), admin))
}

func TestUserContext_UserIDPtr(t *testing.T) {
	assert.Nil(t, (&UserContext{System: true}).UserIDPtr())
	id := uuid.New()
	got := (&UserContext{UserID: id}).UserIDPtr()
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}
