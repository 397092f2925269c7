// internal/app/features/donations/handler.go

// Package donations serves giving: donors and companies create
// donations against active campaigns, list their own history, NGOs see
// donations to their campaigns, and admins settle payments by moving
// donations through the lifecycle. Settlement is what adjusts campaign
// raised totals.
package donations

import (
	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for donations.
type Handler struct {
	Donations *donationstore.Store
	Campaigns *campaignstore.Store
	NGOs      *ngostore.Store
	Audit     *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a donations handler bound to its stores.
func NewHandler(donations *donationstore.Store, campaigns *campaignstore.Store, ngos *ngostore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Donations: donations,
		Campaigns: campaigns,
		NGOs:      ngos,
		Audit:     audit,
		Log:       logger,
	}
}
