package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/service"
	"go.uber.org/zap"
)

// InquiryHandler handles HTTP requests for inquiries and their KPI lifecycle
type InquiryHandler struct {
	inquiryService *service.InquiryService
	kpiService     *service.InquiryKPIService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService *service.InquiryService, kpiService *service.InquiryKPIService, maxUploadBytes int64, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		kpiService:     kpiService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *InquiryHandler) inquiryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inquiry ID: must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// List godoc
// @Summary List inquiries
// @Description Returns a paginated, filterable list of inquiries
// @Tags Inquiries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(pending, quoted, success, failed)
// @Param salesManagerId query string false "Filter by sales manager ID"
// @Param isNewCustomer query bool false "Filter by new customer flag"
// @Param search query string false "Search client and text"
// @Param createdFrom query string false "Created on or after (RFC 3339)"
// @Param createdTo query string false "Created before (RFC 3339)"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, client, status, quotedAt)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries [get]
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	filters := &repository.InquiryFilters{Search: q.Get("search")}
	if v := q.Get("status"); v != "" {
		status := domain.InquiryStatus(v)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filters.Status = &status
	}
	if v := q.Get("salesManagerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid salesManagerId: must be a valid UUID")
			return
		}
		filters.SalesManagerID = &id
	}
	if v := q.Get("isNewCustomer"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid isNewCustomer: must be true or false")
			return
		}
		filters.IsNewCustomer = &b
	}
	for name, dst := range map[string]**time.Time{"createdFrom": &filters.CreatedFrom, "createdTo": &filters.CreatedTo} {
		if v := q.Get(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid "+name+": must be an RFC 3339 timestamp")
				return
			}
			*dst = &t
		}
	}

	sort := repository.DefaultSortConfig()
	if v := q.Get("sortBy"); v != "" {
		sort.Field = v
	}
	if v := q.Get("sortOrder"); v != "" {
		sort.Order = repository.ParseSortOrder(v)
	}

	result, err := h.inquiryService.List(r.Context(), page, pageSize, filters, sort)
	if err != nil {
		respondServiceError(w, h.logger, err, "list inquiries")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create inquiry
// @Description Creates an inquiry. Inquiries created with a non-pending status get their KPI fields computed from the supplied timestamps.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body domain.CreateInquiryRequest true "Inquiry data"
// @Success 201 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Timestamps do not form a valid transition"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries [post]
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create inquiry")
		return
	}

	w.Header().Set("Location", "/api/v1/inquiries/"+inquiry.ID.String())
	respondJSON(w, http.StatusCreated, inquiry)
}

// Stats godoc
// @Summary Inquiry statistics
// @Description Returns inquiry counts per status, new customers and the conversion rate over all inquiries
// @Tags Inquiries
// @Produce json
// @Success 200 {object} domain.InquiryStatsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/stats [get]
func (h *InquiryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.inquiryService.Stats(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "get inquiry statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetByID godoc
// @Summary Get inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError "Invalid ID"
// @Failure 404 {object} domain.APIError "Inquiry not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id} [get]
func (h *InquiryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// Update godoc
// @Summary Update inquiry
// @Description Partially updates an inquiry. A status change is applied through the KPI engine.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.UpdateInquiryRequest true "Fields to change"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Invalid status transition"
// @Failure 423 {object} domain.APIError "KPI fields are locked"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id} [put]
func (h *InquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// Delete godoc
// @Summary Delete inquiry
// @Description Deletes a pending or failed inquiry and its attachment
// @Tags Inquiries
// @Param id path string true "Inquiry ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Quoted or successful inquiries cannot be deleted"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	if err := h.inquiryService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete inquiry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// transition decodes the optional timestamp body shared by quote, success and failed
func (h *InquiryHandler) transition(w http.ResponseWriter, r *http.Request, action string,
	apply func(id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error)) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	var req domain.TransitionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}

	inquiry, err := apply(id, req.At)
	if err != nil {
		respondServiceError(w, h.logger, err, action)
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// Quote godoc
// @Summary Mark inquiry quoted
// @Description Moves a pending inquiry to quoted and grades the business-hours response time
// @Tags Inquiry KPI
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.TransitionRequest false "Optional explicit timestamp"
// @Success 200 {object} domain.InquiryDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Inquiry is not pending"
// @Failure 423 {object} domain.APIError "KPI fields are locked"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/quote [post]
func (h *InquiryHandler) Quote(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "quote inquiry", func(id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error) {
		return h.kpiService.Quote(r.Context(), id, at)
	})
}

// MarkSuccess godoc
// @Summary Mark inquiry successful
// @Tags Inquiry KPI
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.TransitionRequest false "Optional explicit timestamp"
// @Success 200 {object} domain.InquiryDTO
// @Failure 409 {object} domain.APIError "Inquiry is not quoted"
// @Failure 423 {object} domain.APIError "KPI fields are locked"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/success [post]
func (h *InquiryHandler) MarkSuccess(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "mark inquiry successful", func(id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error) {
		return h.kpiService.MarkSuccess(r.Context(), id, at)
	})
}

// MarkFailed godoc
// @Summary Mark inquiry failed
// @Tags Inquiry KPI
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.TransitionRequest false "Optional explicit timestamp"
// @Success 200 {object} domain.InquiryDTO
// @Failure 409 {object} domain.APIError "Inquiry is not quoted"
// @Failure 423 {object} domain.APIError "KPI fields are locked"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/failed [post]
func (h *InquiryHandler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "mark inquiry failed", func(id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error) {
		return h.kpiService.MarkFailed(r.Context(), id, at)
	})
}

// Recalculate godoc
// @Summary Recalculate inquiry KPI
// @Description Recomputes durations and grades from stored timestamps. force overrides the KPI lock.
// @Tags Inquiry KPI
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.RecalculateRequest false "Options"
// @Success 200 {object} domain.InquiryDTO
// @Failure 409 {object} domain.APIError "Auto completion is enabled"
// @Failure 423 {object} domain.APIError "KPI fields are locked"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/recalculate [post]
func (h *InquiryHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	var req domain.RecalculateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}

	inquiry, err := h.kpiService.Recalculate(r.Context(), id, req.Force)
	if err != nil {
		respondServiceError(w, h.logger, err, "recalculate inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// SetLock godoc
// @Summary Lock or unlock inquiry KPI fields
// @Tags Inquiry KPI
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.SetLockRequest true "Lock state"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/kpi-lock [post]
func (h *InquiryHandler) SetLock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	var req domain.SetLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.kpiService.SetLocked(r.Context(), id, *req.Locked)
	if err != nil {
		respondServiceError(w, h.logger, err, "change KPI lock")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// SetAutoCompletion godoc
// @Summary Enable or disable KPI auto completion
// @Tags Inquiry KPI
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.SetAutoCompletionRequest true "Auto completion state"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/auto-completion [post]
func (h *InquiryHandler) SetAutoCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	var req domain.SetAutoCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, malformedBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	inquiry, err := h.kpiService.SetAutoCompletion(r.Context(), id, *req.Enabled)
	if err != nil {
		respondServiceError(w, h.logger, err, "change auto completion")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// UploadAttachment godoc
// @Summary Upload inquiry attachment
// @Description Replaces the attachment of an inquiry. The file is streamed from the "file" form field.
// @Tags Inquiries
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError "File too large"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/attachment [post]
func (h *InquiryHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	// leave room for multipart framing; the service enforces the file limit itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	mr, err := r.MultipartReader()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: expected multipart/form-data")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid file upload: malformed multipart body")
			return
		}
		if part.FormName() != "file" || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		inquiry, err := h.inquiryService.UploadAttachment(r.Context(), id, part.FileName(), part.Header.Get("Content-Type"), part)
		_ = part.Close()
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				err = service.ErrAttachmentTooLarge
			}
			respondServiceError(w, h.logger, err, "upload attachment")
			return
		}
		respondJSON(w, http.StatusOK, inquiry)
		return
	}
}

// DownloadAttachment godoc
// @Summary Download inquiry attachment
// @Tags Inquiries
// @Produce octet-stream
// @Param id path string true "Inquiry ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError "Inquiry or attachment not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id}/attachment [get]
func (h *InquiryHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.inquiryID(w, r)
	if !ok {
		return
	}

	body, name, err := h.inquiryService.DownloadAttachment(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "download attachment")
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("attachment download interrupted", zap.String("inquiry_id", id.String()), zap.Error(err))
	}
}
