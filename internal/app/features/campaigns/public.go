// internal/app/features/campaigns/public.go
package campaigns

import (
	"context"
	"errors"
	"net/http"

	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList returns the public campaign catalog. Only active campaigns
// are listed regardless of query parameters; the admin queue at
// /campaigns/admin/all serves the other statuses.
//
// Route: GET /campaigns?ngo=&category=&search=&page=&limit=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r)

	filter := campaignstore.ListFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Status:   models.CampaignActive,
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
		h.Log.Error("campaigns: public list failed", zap.Error(err))
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

// ServeView returns one campaign, whatever its status. Donors landing
// on a suspended or completed campaign page see its current state
// rather than a 404.
//
// Route: GET /campaigns/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	campaign, err := h.Campaigns.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
			return
		}
		h.Log.Error("campaigns: view failed", zap.Error(err), zap.String("campaign_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load campaign.")
		return
	}

	httpjson.Respond(w, http.StatusOK, campaign)
}
