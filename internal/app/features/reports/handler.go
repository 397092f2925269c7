// internal/app/features/reports/handler.go

// Package reports serves the admin reporting endpoints: a platform
// overview and per-campaign / per-NGO donation breakdowns built from
// aggregation pipelines in the stores.
package reports

import (
	"github.com/kindbridge/kindbridge/internal/app/store/audit"
	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for reports.
type Handler struct {
	Users     *userstore.Store
	NGOs      *ngostore.Store
	Campaigns *campaignstore.Store
	Donations *donationstore.Store
	Events    *audit.Store
	Log       *zap.Logger
}

// NewHandler constructs a reports handler bound to its stores.
func NewHandler(users *userstore.Store, ngos *ngostore.Store, campaigns *campaignstore.Store, donations *donationstore.Store, events *audit.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:     users,
		NGOs:      ngos,
		Campaigns: campaigns,
		Donations: donations,
		Events:    events,
		Log:       logger,
	}
}
