// internal/app/features/campaigns/handler.go

// Package campaigns serves fundraising campaigns: a public catalog of
// active drives, self-service management for NGO operators, and the
// admin review queue that moves campaigns through their lifecycle.
package campaigns

import (
	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for campaigns.
type Handler struct {
	Campaigns *campaignstore.Store
	NGOs      *ngostore.Store
	Audit     *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a campaigns handler bound to its stores.
func NewHandler(campaigns *campaignstore.Store, ngos *ngostore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Campaigns: campaigns,
		NGOs:      ngos,
		Audit:     audit,
		Log:       logger,
	}
}
