// internal/app/features/companies/handler.go

// Package companies serves corporate donor profiles: self-service
// registration and editing for company representatives, and an admin
// listing.
package companies

import (
	companystore "github.com/kindbridge/kindbridge/internal/app/store/companies"
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for companies.
type Handler struct {
	Companies *companystore.Store
	Users     *userstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a companies handler bound to its stores.
func NewHandler(companies *companystore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Companies: companies,
		Users:     users,
		Log:       logger,
	}
}
