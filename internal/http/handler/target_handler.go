package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/auth"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/service"
	"go.uber.org/zap"
)

// TargetHandler manages inquiry-volume performance targets and grades managers against them
type TargetHandler struct {
	targetService      *service.PerformanceTargetService
	performanceService *service.PerformanceService
	loc                *time.Location
	logger             *zap.Logger
}

func NewTargetHandler(targetService *service.PerformanceTargetService, performanceService *service.PerformanceService, loc *time.Location, logger *zap.Logger) *TargetHandler {
	return &TargetHandler{
		targetService:      targetService,
		performanceService: performanceService,
		loc:                loc,
		logger:             logger,
	}
}

func (h *TargetHandler) targetID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid target ID: must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// List godoc
// @Summary List performance targets
// @Tags Targets
// @Produce json
// @Param includeInactive query bool false "Include deactivated targets"
// @Success 200 {array} domain.PerformanceTargetDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets [get]
func (h *TargetHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	targets, err := h.targetService.List(r.Context(), includeInactive)
	if err != nil {
		respondServiceError(w, h.logger, err, "list performance targets")
		return
	}
	respondJSON(w, http.StatusOK, targets)
}

// Create godoc
// @Summary Create performance target
// @Description Adds a volume bracket. Active brackets may not overlap.
// @Tags Targets
// @Accept json
// @Produce json
// @Param request body domain.PerformanceTargetRequest true "Target"
// @Success 201 {object} domain.PerformanceTargetDTO
// @Failure 400 {object} domain.APIError "Invalid or overlapping range"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets [post]
func (h *TargetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PerformanceTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	target, err := h.targetService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create performance target")
		return
	}
	respondJSON(w, http.StatusCreated, target)
}

// Update godoc
// @Summary Update performance target
// @Tags Targets
// @Accept json
// @Produce json
// @Param id path string true "Target ID"
// @Param request body domain.PerformanceTargetRequest true "Target"
// @Success 200 {object} domain.PerformanceTargetDTO
// @Failure 400 {object} domain.APIError "Invalid or overlapping range"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/{id} [put]
func (h *TargetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetID(w, r)
	if !ok {
		return
	}

	var req domain.PerformanceTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	target, err := h.targetService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update performance target")
		return
	}
	respondJSON(w, http.StatusOK, target)
}

// BulkReplace godoc
// @Summary Replace all performance targets
// @Description Updates listed targets with an id, creates the rest and deactivates every other target. Nothing is written if any entry is invalid.
// @Tags Targets
// @Accept json
// @Produce json
// @Param request body domain.BulkPerformanceTargetsRequest true "Complete target set"
// @Success 200 {array} domain.PerformanceTargetDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Listed id does not exist"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/bulk [put]
func (h *TargetHandler) BulkReplace(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkPerformanceTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	targets, err := h.targetService.BulkReplace(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "replace performance targets")
		return
	}
	respondJSON(w, http.StatusOK, targets)
}

// Delete godoc
// @Summary Delete performance target
// @Tags Targets
// @Param id path string true "Target ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/{id} [delete]
func (h *TargetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetID(w, r)
	if !ok {
		return
	}
	if err := h.targetService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete performance target")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyGrade godoc
// @Summary My performance grade
// @Tags Targets
// @Produce json
// @Param date_from query string false "First day (YYYY-MM-DD)"
// @Param date_to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.PerformanceGradeDTO
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /targets/my-grade [get]
func (h *TargetHandler) MyGrade(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok || userCtx.System {
		respondWithError(w, http.StatusForbidden, "Grades are only available to signed-in users")
		return
	}
	h.grade(w, r, userCtx.UserID)
}

// ManagerGrade godoc
// @Summary Manager performance grade
// @Description Weighted score of a manager compared with the threshold of the bracket matching their inquiry count
// @Tags Targets
// @Produce json
// @Param id path string true "Manager user ID"
// @Param date_from query string false "First day (YYYY-MM-DD)"
// @Param date_to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.PerformanceGradeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/managers/{id}/grade [get]
func (h *TargetHandler) ManagerGrade(w http.ResponseWriter, r *http.Request) {
	managerID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid manager ID: must be a valid UUID")
		return
	}
	h.grade(w, r, managerID)
}

func (h *TargetHandler) grade(w http.ResponseWriter, r *http.Request, managerID uuid.UUID) {
	rng, ok := dateRange(w, r, h.loc, h.performanceService)
	if !ok {
		return
	}
	grade, err := h.performanceService.GetPerformanceGrade(r.Context(), managerID, rng)
	if err != nil {
		respondServiceError(w, h.logger, err, "grade performance")
		return
	}
	respondJSON(w, http.StatusOK, grade)
}
