package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/salestrack/inquiry-api/internal/auth"
	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/salestrack/inquiry-api/internal/database"
	"github.com/salestrack/inquiry-api/internal/datawarehouse"
	"github.com/salestrack/inquiry-api/internal/http/handler"
	"github.com/salestrack/inquiry-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/salestrack/inquiry-api/docs" // Import generated swagger docs
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Auth    *handler.AuthHandler
	Inquiry *handler.InquiryHandler
	KPI     *handler.KPIHandler
	Target  *handler.TargetHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	warehouse      *datawarehouse.Client
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       Handlers
}

// NewRouter creates the router. warehouse may be nil when the ERP lookup is disabled.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouse *datawarehouse.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		warehouse:      warehouse,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if rt.cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(time.Duration(rt.cfg.Server.RequestTimeout) * time.Second))
	}

	// liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	h := rt.handlers
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(middleware.CaptureUser)
			r.Use(rt.rateLimiter.LimitByUser)

			r.Get("/auth/me", h.Auth.Me)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireManagerOrAdmin)

				r.Route("/inquiries", func(r chi.Router) {
					r.Get("/", h.Inquiry.List)
					r.Post("/", h.Inquiry.Create)
					r.Get("/stats", h.Inquiry.Stats)
					r.Get("/{id}", h.Inquiry.GetByID)
					r.Put("/{id}", h.Inquiry.Update)
					r.With(rt.authMiddleware.RequireAdmin).Delete("/{id}", h.Inquiry.Delete)

					r.Post("/{id}/quote", h.Inquiry.Quote)
					r.Post("/{id}/success", h.Inquiry.MarkSuccess)
					r.Post("/{id}/failed", h.Inquiry.MarkFailed)
					r.Post("/{id}/recalculate", h.Inquiry.Recalculate)
					r.Post("/{id}/kpi-lock", h.Inquiry.SetLock)
					r.Post("/{id}/auto-completion", h.Inquiry.SetAutoCompletion)

					r.Post("/{id}/attachment", h.Inquiry.UploadAttachment)
					r.Get("/{id}/attachment", h.Inquiry.DownloadAttachment)
				})

				r.Route("/kpi", func(r chi.Router) {
					r.Get("/weights", h.KPI.GetWeights)
					r.With(rt.authMiddleware.RequireAdmin).Put("/weights", h.KPI.UpdateWeights)
					r.Get("/my-performance", h.KPI.MyPerformance)
					r.Get("/dashboard", h.KPI.Dashboard)
					r.Get("/managers/{id}", h.KPI.ManagerStatistics)
				})

				r.Route("/targets", func(r chi.Router) {
					r.Get("/my-grade", h.Target.MyGrade)

					r.Group(func(r chi.Router) {
						r.Use(rt.authMiddleware.RequireAdmin)
						r.Get("/", h.Target.List)
						r.Post("/", h.Target.Create)
						r.Put("/bulk", h.Target.BulkReplace)
						r.Put("/{id}", h.Target.Update)
						r.Delete("/{id}", h.Target.Delete)
						r.Get("/managers/{id}/grade", h.Target.ManagerGrade)
					})
				})
			})
		})
	})

	return r
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("database health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// readiness fails only on the database; the warehouse is reported but optional
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]interface{}{}
	healthy := true

	if err := database.HealthCheck(rt.db); err != nil {
		rt.logger.Error("database health check failed", zap.Error(err))
		checks["database"] = map[string]string{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		checks["database"] = map[string]string{"status": "healthy"}
	}
	checks["data_warehouse"] = rt.warehouse.HealthCheck(r.Context())

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
