// internal/app/features/donations/list.go
package donations

import (
	"context"
	"errors"
	"net/http"

	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeMine lists the caller's own donation history, newest first.
//
// Route: GET /donations/mine?status=&page=&limit=
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
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

	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	donations, total, err := h.Donations.List(ctx, donationstore.ListFilter{
		DonorID: &donorID,
		Status:  r.URL.Query().Get("status"),
	}, page, limit)
	if err != nil {
		h.Log.Error("donations: own list failed", zap.Error(err))
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

// ServeByCampaign lists donations to one campaign. Admins see any
// campaign; NGO operators only their own.
//
// Route: GET /donations/campaign/{id}?status=&page=&limit=
func (h *Handler) ServeByCampaign(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	campaignID, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
		return
	}

	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if p.Role != authz.RoleAdmin {
		campaign, err := h.Campaigns.GetByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
				return
			}
			h.Log.Error("donations: campaign lookup failed", zap.Error(err), zap.String("campaign_id", campaignID.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "Failed to list donations.")
			return
		}

		ownerID, err := p.ObjectID()
		if err != nil {
			httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
			return
		}
		ngo, err := h.NGOs.GetByOwner(ctx, ownerID)
		if err != nil || ngo.ID != campaign.NGOID {
			httpjson.Error(w, http.StatusForbidden, "This campaign belongs to another NGO.")
			return
		}
	}

	donations, total, err := h.Donations.List(ctx, donationstore.ListFilter{
		CampaignID: &campaignID,
		Status:     r.URL.Query().Get("status"),
	}, page, limit)
	if err != nil {
		h.Log.Error("donations: campaign list failed", zap.Error(err), zap.String("campaign_id", campaignID.Hex()))
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

// ServeView returns one donation. Admins see any; other callers only
// their own.
//
// Route: GET /donations/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid donation id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	donation, err := h.Donations.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Donation not found.")
			return
		}
		h.Log.Error("donations: view failed", zap.Error(err), zap.String("donation_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load donation.")
		return
	}

	if p.Role != authz.RoleAdmin && donation.DonorID.Hex() != p.ID {
		httpjson.Error(w, http.StatusForbidden, "This donation belongs to another account.")
		return
	}

	httpjson.Respond(w, http.StatusOK, donation)
}
