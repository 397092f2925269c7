// internal/app/features/donations/admin.go
package donations

import (
	"context"
	"errors"
	"net/http"

	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeAdminList returns donations across the platform, with optional
// campaign, donor, and status filters.
//
// Route: GET /donations/admin/all?campaign=&donor=&status=&page=&limit=
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r)

	filter := donationstore.ListFilter{Status: q.Get("status")}
	if hex := q.Get("campaign"); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
			return
		}
		filter.CampaignID = &oid
	}
	if hex := q.Get("donor"); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid donor id.")
			return
		}
		filter.DonorID = &oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	donations, total, err := h.Donations.List(ctx, filter, page, limit)
	if err != nil {
		h.Log.Error("donations: admin list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list donations.")
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{
		Items: donations,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

type transitionRequest struct {
	Status string `json:"status"`
}

// HandleTransition settles a donation. Completing adds the amount to
// the campaign's raised total and completes the campaign if that
// pushed it past its goal; refunding subtracts the amount again.
//
// Route: PATCH /donations/{id}/status
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid donation id.")
		return
	}

	var req transitionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	donation, err := h.Donations.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Donation not found.")
			return
		}
		h.Log.Error("donations: transition lookup failed", zap.Error(err), zap.String("donation_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update donation.")
		return
	}

	// The status-pinned transition makes this settle-once even under
	// concurrent admin actions: only one request wins the move, and
	// only the winner adjusts the campaign total.
	if err := h.Donations.Transition(ctx, oid, donation.Status, req.Status); err != nil {
		if errors.Is(err, donationstore.ErrInvalidTransition) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("donations: transition failed", zap.Error(err), zap.String("donation_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update donation.")
		return
	}

	switch req.Status {
	case models.DonationCompleted:
		h.applyRaised(ctx, donation, donation.Amount)
	case models.DonationRefunded:
		h.applyRaised(ctx, donation, -donation.Amount)
	}

	if actor, ok := sysauth.CurrentPrincipal(r); ok {
		if actorID, err := actor.ObjectID(); err == nil {
			h.Audit.DonationTransition(ctx, r, actorID, oid, donation.Status, req.Status)
		}
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{"status": req.Status})
}

// applyRaised adjusts the campaign raised total and completes the
// campaign when the goal is reached. Failures are logged, not surfaced:
// the donation transition has already been committed.
func (h *Handler) applyRaised(ctx context.Context, donation *models.Donation, delta int64) {
	campaign, err := h.Campaigns.AddRaised(ctx, donation.CampaignID, delta)
	if err != nil {
		h.Log.Error("donations: adjusting campaign total failed",
			zap.Error(err),
			zap.String("campaign_id", donation.CampaignID.Hex()),
			zap.Int64("delta", delta))
		return
	}

	if delta > 0 && campaign.Status == models.CampaignActive && campaign.RaisedAmount >= campaign.GoalAmount {
		// A concurrent settlement may complete it first; that is fine.
		if err := h.Campaigns.Transition(ctx, campaign.ID, models.CampaignActive, models.CampaignCompleted); err != nil {
			h.Log.Info("donations: campaign auto-complete skipped",
				zap.Error(err), zap.String("campaign_id", campaign.ID.Hex()))
		}
	}
}
