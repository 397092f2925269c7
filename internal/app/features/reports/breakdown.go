// internal/app/features/reports/breakdown.go
package reports

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// campaignReport pairs a campaign with its donation breakdown.
type campaignReport struct {
	Campaign *models.Campaign            `json:"campaign"`
	Totals   []donationstore.StatusTotal `json:"totals"`
}

// ServeCampaignReport returns one campaign's donation breakdown by
// status: pending, completed, failed, refunded.
//
// Route: GET /reports/campaigns/{id}
func (h *Handler) ServeCampaignReport(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	campaign, err := h.Campaigns.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
			return
		}
		h.Log.Error("reports: campaign lookup failed", zap.Error(err), zap.String("campaign_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	totals, err := h.Donations.TotalsByStatus(ctx, &oid)
	if err != nil {
		h.Log.Error("reports: campaign totals failed", zap.Error(err), zap.String("campaign_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	httpjson.Respond(w, http.StatusOK, campaignReport{Campaign: campaign, Totals: totals})
}

// ngoReport pairs an NGO with per-campaign completed-donation summaries.
type ngoReport struct {
	NGO       *models.NGO                     `json:"ngo"`
	Campaigns []models.Campaign               `json:"campaigns"`
	Summaries []donationstore.CampaignSummary `json:"summaries"`
}

// ServeNGOReport returns an NGO's campaigns with completed-donation
// counts, distinct donor counts, and amounts per campaign.
//
// Route: GET /reports/ngos/{id}
func (h *Handler) ServeNGOReport(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid NGO id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ngo, err := h.NGOs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "NGO not found.")
			return
		}
		h.Log.Error("reports: ngo lookup failed", zap.Error(err), zap.String("ngo_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	campaigns, _, err := h.Campaigns.List(ctx, campaignstore.ListFilter{NGOID: &oid}, 1, 100)
	if err != nil {
		h.Log.Error("reports: ngo campaigns failed", zap.Error(err), zap.String("ngo_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.ID)
	}

	var summaries []donationstore.CampaignSummary
	if len(ids) > 0 {
		summaries, err = h.Donations.SummarizeByCampaign(ctx, ids)
		if err != nil {
			h.Log.Error("reports: ngo summaries failed", zap.Error(err), zap.String("ngo_id", oid.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
			return
		}
	}

	httpjson.Respond(w, http.StatusOK, ngoReport{
		NGO:       ngo,
		Campaigns: campaigns,
		Summaries: summaries,
	})
}
