// internal/app/features/users/handler.go

// Package users is the admin-facing account management surface:
// listing, inspection, status and role changes, and deletion.
package users

import (
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for user management.
type Handler struct {
	Users *userstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a users handler bound to the user store.
func NewHandler(users *userstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users: users,
		Audit: audit,
		Log:   logger,
	}
}
