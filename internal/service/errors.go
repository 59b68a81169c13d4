package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user may not act on a resource
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
)

// Inquiry errors
var (
	ErrInquiryNotFound = errors.New("inquiry not found")

	// ErrInquiryNotDeletable is returned when deleting a quoted or successful inquiry
	ErrInquiryNotDeletable = errors.New("only pending or failed inquiries can be deleted")

	// ErrMissingContent is returned when an inquiry has neither text nor attachment
	ErrMissingContent = errors.New("inquiry requires text or an attachment")

	ErrAttachmentTooLarge = errors.New("attachment exceeds maximum upload size")
	ErrAttachmentNotFound = errors.New("inquiry has no attachment")

	// ErrInvalidSalesManager is returned when the assignee is not an active manager or admin
	ErrInvalidSalesManager = errors.New("sales manager must be an active manager or admin")
)

// User and auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is inactive")
)

// Target errors
var (
	ErrTargetNotFound = errors.New("performance target not found")
)
