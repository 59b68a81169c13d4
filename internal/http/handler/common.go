package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/mapper"
	"github.com/salestrack/inquiry-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithErrorType(w, status, getErrorType(status), message)
}

func respondWithErrorType(w http.ResponseWriter, status int, errType, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   errType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusLocked:
		return domain.ErrorTypeLocked
	default:
		return domain.ErrorTypeInternal
	}
}

var kpiErrorStatus = map[kpi.ErrorKind]struct {
	status  int
	errType string
}{
	kpi.KindValidation:        {http.StatusBadRequest, domain.ErrorTypeValidation},
	kpi.KindInvalidTransition: {http.StatusConflict, domain.ErrorTypeInvalidTransition},
	kpi.KindLockedRecord:      {http.StatusLocked, domain.ErrorTypeLocked},
	kpi.KindNotFound:          {http.StatusNotFound, domain.ErrorTypeNotFound},
}

// statusForError maps service and KPI errors to an HTTP status. Unknown
// errors map to 500.
func statusForError(err error) int {
	if m, ok := kpiErrorStatus[kpi.KindOf(err)]; ok {
		return m.status
	}
	switch {
	case errors.Is(err, service.ErrInquiryNotFound),
		errors.Is(err, service.ErrTargetNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAttachmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInactiveUser), errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInquiryNotDeletable):
		return http.StatusConflict
	case errors.Is(err, service.ErrMissingContent),
		errors.Is(err, service.ErrInvalidSalesManager),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAttachmentTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err as an API error. Internal failures are
// logged with action and hidden from the client.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, status, "Failed to "+action)
		return
	}
	if m, ok := kpiErrorStatus[kpi.KindOf(err)]; ok {
		respondWithErrorType(w, status, m.errType, err.Error())
		return
	}
	respondWithError(w, status, err.Error())
}

const malformedBody = "Invalid request body: malformed JSON"

// decodeOptionalJSON decodes a request body that may be empty
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// parseDateRangeQuery reads the optional date_from/date_to query parameters
// as calendar days in loc
func parseDateRangeQuery(r *http.Request, loc *time.Location) (from, to *time.Time, err error) {
	parse := func(name string) (*time.Time, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return nil, nil
		}
		t, err := time.ParseInLocation(mapper.DateFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: expected YYYY-MM-DD", name)
		}
		return &t, nil
	}
	if from, err = parse("date_from"); err != nil {
		return nil, nil, err
	}
	if to, err = parse("date_to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
