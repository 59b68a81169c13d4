package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID   uuid.UUID
	Username string
	UserType domain.UserType
	// System is set for requests authenticated with the service API key
	System bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasAnyType checks if the user is of one of the given types
func (u *UserContext) HasAnyType(types ...domain.UserType) bool {
	for _, t := range types {
		if u.UserType == t {
			return true
		}
	}
	return false
}

// IsManagerOrAdmin checks if the user may work on inquiries and KPIs
func (u *UserContext) IsManagerOrAdmin() bool {
	return u.UserType.IsManagerOrAdmin()
}

// IsAdmin checks if the user may change KPI configuration
func (u *UserContext) IsAdmin() bool {
	return u.UserType == domain.UserTypeAdmin
}

// UserIDPtr returns the user id, or nil for the system user
func (u *UserContext) UserIDPtr() *uuid.UUID {
	if u.System || u.UserID == uuid.Nil {
		return nil
	}
	id := u.UserID
	return &id
}
