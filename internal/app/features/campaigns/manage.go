// internal/app/features/campaigns/manage.go
package campaigns

import (
	"context"
	"errors"
	"net/http"
	"time"

	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type campaignRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	GoalAmount  int64      `json:"goal_amount"`
	Currency    string     `json:"currency"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// ownNGO resolves the caller's NGO. Campaigns always belong to the
// NGO entity, not to the operator account directly.
func (h *Handler) ownNGO(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.NGO, bool) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return nil, false
	}
	ownerID, err := p.ObjectID()
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return nil, false
	}

	ngo, err := h.NGOs.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "Register an NGO before managing campaigns.")
			return nil, false
		}
		h.Log.Error("campaigns: owner NGO lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load NGO.")
		return nil, false
	}
	return ngo, true
}

// HandleCreate submits a new campaign for review. It starts pending;
// an admin activates it once the NGO is verified.
//
// Route: POST /campaigns
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngo, ok := h.ownNGO(ctx, w, r)
	if !ok {
		return
	}

	campaign, err := h.Campaigns.Create(ctx, models.Campaign{
		NGOID:       ngo.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		Currency:    req.Currency,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	httpjson.Respond(w, http.StatusCreated, campaign)
}

// ServeMine lists the caller's campaigns across all statuses.
//
// Route: GET /campaigns/mine
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngo, ok := h.ownNGO(ctx, w, r)
	if !ok {
		return
	}

	campaigns, total, err := h.Campaigns.List(ctx, campaignstore.ListFilter{NGOID: &ngo.ID}, page, limit)
	if err != nil {
		h.Log.Error("campaigns: own list failed", zap.Error(err), zap.String("ngo_id", ngo.ID.Hex()))
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

// HandleUpdate edits one of the caller's campaigns. Edits are only
// accepted while the campaign is pending or active.
//
// Route: PUT /campaigns/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid campaign id.")
		return
	}

	var req campaignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngo, ok := h.ownNGO(ctx, w, r)
	if !ok {
		return
	}

	campaign, err := h.Campaigns.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
			return
		}
		h.Log.Error("campaigns: update lookup failed", zap.Error(err), zap.String("campaign_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update campaign.")
		return
	}
	if campaign.NGOID != ngo.ID {
		httpjson.Error(w, http.StatusForbidden, "This campaign belongs to another NGO.")
		return
	}

	if err := h.Campaigns.Update(ctx, oid, campaignstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		EndsAt:      req.EndsAt,
	}); err != nil {
		switch {
		case errors.Is(err, campaignstore.ErrNotEditable):
			httpjson.Error(w, http.StatusConflict, "Campaign can no longer be edited.")
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "Campaign not found.")
		default:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	updated, err := h.Campaigns.GetByID(ctx, oid)
	if err != nil {
		h.Log.Error("campaigns: reload after update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update campaign.")
		return
	}

	httpjson.Respond(w, http.StatusOK, updated)
}
