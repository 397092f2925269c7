// internal/app/features/ngos/handler.go

// Package ngos serves the NGO directory: a public listing of verified
// charities, self-service profile management for NGO operators, and
// admin verification.
package ngos

import (
	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for NGOs.
type Handler struct {
	NGOs  *ngostore.Store
	Users *userstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs an NGOs handler bound to its stores.
func NewHandler(ngos *ngostore.Store, users *userstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		NGOs:  ngos,
		Users: users,
		Audit: audit,
		Log:   logger,
	}
}
