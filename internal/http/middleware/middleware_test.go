package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/auth"
	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var seen string
	h := middleware.Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inquiries", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, int64(http.StatusCreated), entry.ContextMap()["status_code"])
	assert.Equal(t, seen, entry.ContextMap()["request_id"])
}

func TestLogging_ReusesValidRequestID(t *testing.T) {
	id := uuid.NewString()
	h := middleware.Logging(zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid\r\n")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid\r\n", w.Header().Get(middleware.RequestIDHeader))
}

func TestLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := middleware.Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.level, logs.All()[0].Level)
		})
	}
}

func TestLogging_CapturesAuthenticatedUser(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	userID := uuid.New()

	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.WithUserContext(r.Context(), &auth.UserContext{
				UserID:   userID,
				Username: "aigerim",
				UserType: domain.UserTypeManager,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	h := middleware.Logging(zap.New(core))(authenticate(middleware.CaptureUser(okHandler())))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, userID.String(), fields["user_id"])
	assert.Equal(t, "aigerim", fields["username"])
}

func TestRecovery_ReturnsJSON500(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	h := middleware.Logging(zap.NewNop())(middleware.Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body domain.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Contains(t, body.Detail, w.Header().Get(middleware.RequestIDHeader))

	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRecovery_RepanicsOnAbort(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           true,
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}

	h := middleware.SecurityHeaders(cfg)(okHandler())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains; preload", w.Header().Get("Strict-Transport-Security"))
	_, present := w.Header()["Content-Security-Policy"]
	assert.False(t, present, "empty values are not sent")
}

func TestSecurityHeaders_HSTSDisabled(t *testing.T) {
	h := middleware.SecurityHeaders(&config.SecurityConfig{HSTSMaxAge: 100})(okHandler())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Empty(t, w.Header().Get("X-Content-Type-Options"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://kpi.example.kz"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	h := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://kpi.example.kz")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "https://kpi.example.kz", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyOriginsOutsideDevelopmentDeniesAll(t *testing.T) {
	h := middleware.CORS(&config.CORSConfig{}, "production", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://kpi.example.kz")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DevelopmentReflectsOrigin(t *testing.T) {
	h := middleware.CORS(&config.CORSConfig{}, "development", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func serveN(h http.Handler, n int, path, remote string) []int {
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	return codes
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}, zap.NewNop())

	for _, code := range serveN(rl.LimitByIP(okHandler()), 20, "/api/v1/inquiries", "10.0.0.1:5000") {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestRateLimiter_LimitsByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     3,
		RequestsPerMinuteAuth: 100,
	}, zap.NewNop())
	h := rl.LimitByIP(okHandler())

	codes := serveN(h, 4, "/api/v1/inquiries", "10.0.0.2:5000")
	assert.Equal(t, []int{200, 200, 200, 429}, codes)

	// another client has its own budget
	assert.Equal(t, []int{200}, serveN(h, 1, "/api/v1/inquiries", "10.0.0.3:5000"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inquiries", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body domain.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body.Type)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimiter_Whitelist(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())
	h := rl.LimitByIP(okHandler())

	for _, code := range serveN(h, 5, "/api/v1/inquiries", "127.0.0.1:5000") {
		assert.Equal(t, http.StatusOK, code)
	}
	for _, code := range serveN(h, 5, "/health", "10.0.0.4:5000") {
		assert.Equal(t, http.StatusOK, code)
	}
	for _, code := range serveN(h, 5, "/swagger/index.html", "10.0.0.4:5000") {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, []int{200, 429}, serveN(h, 2, "/health/db", "10.0.0.4:5000"))
}

func TestRateLimiter_LimitsByUser(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     100,
		RequestsPerMinuteAuth: 2,
	}, zap.NewNop())
	h := rl.LimitByUser(okHandler())

	serve := func(userID uuid.UUID, remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/kpi/my-performance", nil)
		req.RemoteAddr = remote
		req = req.WithContext(auth.WithUserContext(context.Background(), &auth.UserContext{
			UserID:   userID,
			UserType: domain.UserTypeManager,
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	alice, bob := uuid.New(), uuid.New()
	// the user budget follows the user across addresses
	assert.Equal(t, http.StatusOK, serve(alice, "10.0.0.5:1"))
	assert.Equal(t, http.StatusOK, serve(alice, "10.0.0.6:1"))
	assert.Equal(t, http.StatusTooManyRequests, serve(alice, "10.0.0.7:1"))
	assert.Equal(t, http.StatusOK, serve(bob, "10.0.0.5:1"))
}
