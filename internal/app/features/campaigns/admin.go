// internal/app/features/campaigns/admin.go
package campaigns

import (
	"context"
	"errors"
	"net/http"

	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeAdminList returns campaigns in any status for the review queue.
//
// Route: GET /campaigns/admin/all?status=&ngo=&page=&limit=
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r)

	filter := campaignstore.ListFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if hex := q.Get("ngo"); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid NGO id.")
			return
		}
		filter.NGOID = &oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campaigns, total, err := h.Campaigns.List(ctx, filter, page, limit)
	if err != nil {
		h.Log.Error("campaigns: admin list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list campaigns.")
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{
		Items: campaigns,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

type transitionRequest struct {
	Status string `json:"status"`
}

// HandleTransition moves a campaign through its lifecycle after admin
// review. Activation additionally requires the owning NGO to be
// verified; the other transitions only consult the lifecycle table.
//
// Route: PATCH /campaigns/{id}/status
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
		return
	}

	var req transitionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campaign, err := h.Campaigns.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
			return
		}
		h.Log.Error("campaigns: transition lookup failed", zap.Error(err), zap.String("campaign_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update campaign.")
		return
	}

	if req.Status == models.CampaignActive {
		ngo, err := h.NGOs.GetByID(ctx, campaign.NGOID)
		if err != nil {
			h.Log.Error("campaigns: NGO lookup for activation failed",
				zap.Error(err), zap.String("ngo_id", campaign.NGOID.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "Failed to update campaign.")
			return
		}
		if !ngo.Verified {
			httpjson.Error(w, http.StatusConflict, "The NGO must be verified before its campaigns can be activated.")
			return
		}
	}

	if err := h.Campaigns.Transition(ctx, oid, campaign.Status, req.Status); err != nil {
		if errors.Is(err, campaignstore.ErrInvalidTransition) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("campaigns: transition failed", zap.Error(err), zap.String("campaign_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update campaign.")
		return
	}

	if actor, ok := sysauth.CurrentPrincipal(r); ok {
		if actorID, err := actor.ObjectID(); err == nil {
			h.Audit.CampaignTransition(ctx, r, actorID, oid, campaign.Status, req.Status)
		}
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{"status": req.Status})
}
