package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/auth"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/service"
	"go.uber.org/zap"
)

// KPIHandler serves weights configuration and manager performance reports
type KPIHandler struct {
	weightsService     *service.KPIWeightsService
	performanceService *service.PerformanceService
	loc                *time.Location
	logger             *zap.Logger
}

// NewKPIHandler creates a KPIHandler. Date query parameters are read as
// calendar days in loc.
func NewKPIHandler(weightsService *service.KPIWeightsService, performanceService *service.PerformanceService, loc *time.Location, logger *zap.Logger) *KPIHandler {
	return &KPIHandler{
		weightsService:     weightsService,
		performanceService: performanceService,
		loc:                loc,
		logger:             logger,
	}
}

// dateRange resolves the date_from/date_to query, writing a 400 on failure
func dateRange(w http.ResponseWriter, r *http.Request, loc *time.Location, performance *service.PerformanceService) (domain.DateRange, bool) {
	from, to, err := parseDateRangeQuery(r, loc)
	if err != nil {
		respondWithErrorType(w, http.StatusBadRequest, domain.ErrorTypeValidation, err.Error())
		return domain.DateRange{}, false
	}
	rng, err := performance.ResolveDateRange(from, to)
	if err != nil {
		respondWithErrorType(w, http.StatusBadRequest, domain.ErrorTypeValidation, err.Error())
		return domain.DateRange{}, false
	}
	return rng, true
}

// GetWeights godoc
// @Summary Get KPI weights
// @Description Returns the current metric weights, or the defaults when none are configured
// @Tags KPI
// @Produce json
// @Success 200 {object} domain.KPIWeightsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /kpi/weights [get]
func (h *KPIHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	weights, err := h.weightsService.GetCurrentWeights(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "get KPI weights")
		return
	}
	respondJSON(w, http.StatusOK, weights)
}

// UpdateWeights godoc
// @Summary Replace KPI weights
// @Description Stores a new weights configuration. The four weights must sum to 100.
// @Tags KPI
// @Accept json
// @Produce json
// @Param request body domain.KPIWeightsRequest true "Weights"
// @Success 200 {object} domain.KPIWeightsDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /kpi/weights [put]
func (h *KPIHandler) UpdateWeights(w http.ResponseWriter, r *http.Request) {
	var req domain.KPIWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	var updatedBy *uuid.UUID
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		updatedBy = userCtx.UserIDPtr()
	}

	weights, err := h.weightsService.CreateWeightsConfiguration(r.Context(), &req, updatedBy)
	if err != nil {
		respondServiceError(w, h.logger, err, "update KPI weights")
		return
	}
	respondJSON(w, http.StatusOK, weights)
}

// ManagerStatistics godoc
// @Summary Manager KPI statistics
// @Description Status counts, grade distribution, points and rates of one manager over a date range (default: current month)
// @Tags KPI
// @Produce json
// @Param id path string true "Manager user ID"
// @Param date_from query string false "First day (YYYY-MM-DD)"
// @Param date_to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.ManagerKPIStatisticsDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /kpi/managers/{id} [get]
func (h *KPIHandler) ManagerStatistics(w http.ResponseWriter, r *http.Request) {
	managerID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid manager ID: must be a valid UUID")
		return
	}
	rng, ok := dateRange(w, r, h.loc, h.performanceService)
	if !ok {
		return
	}

	stats, err := h.performanceService.GetManagerKPIStatistics(r.Context(), managerID, rng)
	if err != nil {
		respondServiceError(w, h.logger, err, "get manager KPI statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Dashboard godoc
// @Summary KPI dashboard
// @Description Every active manager with metric percentages, weighted score and performance grade, best first
// @Tags KPI
// @Produce json
// @Param date_from query string false "First day (YYYY-MM-DD)"
// @Param date_to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.DashboardDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /kpi/dashboard [get]
func (h *KPIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rng, ok := dateRange(w, r, h.loc, h.performanceService)
	if !ok {
		return
	}

	dashboard, err := h.performanceService.Dashboard(r.Context(), rng)
	if err != nil {
		respondServiceError(w, h.logger, err, "build KPI dashboard")
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// MyPerformance godoc
// @Summary My performance
// @Description Metric percentages, weighted score and grade of the calling user
// @Tags KPI
// @Produce json
// @Param date_from query string false "First day (YYYY-MM-DD)"
// @Param date_to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.ManagerPerformanceDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError "API key callers have no performance"
// @Security BearerAuth
// @Router /kpi/my-performance [get]
func (h *KPIHandler) MyPerformance(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok || userCtx.System {
		respondWithError(w, http.StatusForbidden, "Performance is only available to signed-in users")
		return
	}
	rng, ok := dateRange(w, r, h.loc, h.performanceService)
	if !ok {
		return
	}

	row, err := h.performanceService.MyPerformance(r.Context(), userCtx.UserID, rng)
	if err != nil {
		respondServiceError(w, h.logger, err, "get performance")
		return
	}
	respondJSON(w, http.StatusOK, row)
}
