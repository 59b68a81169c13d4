package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/salestrack/inquiry-api/internal/domain"
	"go.uber.org/zap"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	tokens     *TokenManager
	apiKey     string
	cookieName string
	logger     *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.AuthConfig, tokens *TokenManager, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:     tokens,
		apiKey:     cfg.APIKey,
		cookieName: cfg.CookieName,
		logger:     logger,
	}
}

// Authenticate accepts, in order, the x-api-key header, a Bearer token or the
// access token cookie
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			userCtx := &UserContext{
				Username: "system",
				UserType: domain.UserTypeAdmin,
				System:   true,
			}
			m.logger.Debug("request authenticated",
				zap.String("path", r.URL.Path),
				zap.String("auth_type", "api_key"),
			)
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
			return
		}

		token, source := m.extractToken(r)
		if token == "" {
			http.Error(w, "Unauthorized: missing credentials", http.StatusUnauthorized)
			return
		}

		userCtx, err := m.tokens.Validate(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("token_source", source),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", source),
			zap.String("user_id", userCtx.UserID.String()),
			zap.String("user_type", string(userCtx.UserType)),
			zap.Duration("auth_duration", time.Since(start)),
		)

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

func (m *Middleware) extractToken(r *http.Request) (string, string) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token), "bearer"
		}
		return "", "bearer"
	}
	if m.cookieName != "" {
		if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
			return c.Value, "cookie"
		}
	}
	return "", ""
}

// RequireRole middleware ensures the user is of one of the given types
func (m *Middleware) RequireRole(types ...domain.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Forbidden: no user context", http.StatusForbidden)
				return
			}
			if !userCtx.HasAnyType(types...) {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireManagerOrAdmin restricts a route to sales staff
func (m *Middleware) RequireManagerOrAdmin(next http.Handler) http.Handler {
	return m.RequireRole(domain.UserTypeManager, domain.UserTypeAdmin)(next)
}

// RequireAdmin middleware ensures user has admin role or valid API key
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(domain.UserTypeAdmin)(next)
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
