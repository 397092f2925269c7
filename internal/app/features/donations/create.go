// internal/app/features/donations/create.go
package donations

import (
	"context"
	"errors"
	"net/http"

	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	CampaignID string `json:"campaign_id"`
	Amount     int64  `json:"amount"` // minor units
	Currency   string `json:"currency"`
	Message    string `json:"message"`
}

// HandleCreate records a donation against an active campaign. The
// donation starts pending; an admin settles it once the payment
// confirmation arrives, which is when the campaign total moves.
//
// Route: POST /donations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}
	donorID, err := p.ObjectID()
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	campaignID, err := primitive.ObjectIDFromHex(req.CampaignID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
		return
	}
	if req.Amount <= 0 {
		httpjson.Error(w, http.StatusBadRequest, "Donation amount must be positive.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campaign, err := h.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
			return
		}
		h.Log.Error("donations: campaign lookup failed", zap.Error(err), zap.String("campaign_id", req.CampaignID))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create donation.")
		return
	}
	if campaign.Status != models.CampaignActive {
		httpjson.Error(w, http.StatusConflict, "Donations are only accepted for active campaigns.")
		return
	}

	donation, err := h.Donations.Create(ctx, models.Donation{
		CampaignID: campaignID,
		DonorID:    donorID,
		DonorRole:  string(p.Role),
		Amount:     req.Amount,
		Currency:   req.Currency,
		Message:    req.Message,
	})
	if err != nil {
		h.Log.Error("donations: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "Failed to create donation.")
		return
	}

	httpjson.Respond(w, http.StatusCreated, donation)
}
