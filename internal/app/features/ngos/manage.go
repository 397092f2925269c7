// internal/app/features/ngos/manage.go
package ngos

import (
	"context"
	"errors"
	"net/http"

	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Mission            string `json:"mission"`
	Website            string `json:"website"`
	ContactEmail       string `json:"contact_email"`
}

// HandleCreate registers the caller's NGO profile. The profile starts
// unverified; an admin must verify it before its campaigns can be
// activated.
//
// Route: POST /ngos
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}
	ownerID, err := p.ObjectID()
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngo, err := h.NGOs.Create(ctx, models.NGO{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Mission:            req.Mission,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
		OwnerID:            ownerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ngostore.ErrDuplicateRegistration):
			httpjson.Error(w, http.StatusConflict, "An NGO with this registration number already exists.")
		case errors.Is(err, ngostore.ErrOwnerHasNGO):
			httpjson.Error(w, http.StatusConflict, "This account already owns an NGO.")
		default:
			h.Log.Error("ngos: create failed", zap.Error(err))
			httpjson.Error(w, http.StatusBadRequest, "Failed to create NGO.")
		}
		return
	}

	// Back-reference so the account record points at its org entity.
	if err := h.Users.SetOrgRef(ctx, ownerID, "ngo_id", ngo.ID); err != nil {
		h.Log.Error("ngos: setting owner back-reference failed",
			zap.Error(err), zap.String("ngo_id", ngo.ID.Hex()))
	}

	httpjson.Respond(w, http.StatusCreated, ngo)
}

// ServeMine returns the caller's own NGO profile.
//
// Route: GET /ngos/mine
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}
	ownerID, err := p.ObjectID()
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ngo, err := h.NGOs.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "You have not registered an NGO yet.")
			return
		}
		h.Log.Error("ngos: load own profile failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load NGO.")
		return
	}

	httpjson.Respond(w, http.StatusOK, ngo)
}

type updateRequest struct {
	Name         string `json:"name"`
	Mission      string `json:"mission"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`
}

// HandleUpdate edits the caller's own NGO profile. The registration
// number and the verified flag are not editable here.
//
// Route: PUT /ngos/mine
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}
	ownerID, err := p.ObjectID()
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngo, err := h.NGOs.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "You have not registered an NGO yet.")
			return
		}
		h.Log.Error("ngos: load own profile failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update NGO.")
		return
	}

	if err := h.NGOs.Update(ctx, ngo.ID, ngostore.Update{
		Name:         req.Name,
		Mission:      req.Mission,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
	}); err != nil {
		h.Log.Error("ngos: update failed", zap.Error(err), zap.String("ngo_id", ngo.ID.Hex()))
		httpjson.Error(w, http.StatusBadRequest, "Failed to update NGO.")
		return
	}

	updated, err := h.NGOs.GetByID(ctx, ngo.ID)
	if err != nil {
		h.Log.Error("ngos: reload after update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update NGO.")
		return
	}

	httpjson.Respond(w, http.StatusOK, updated)
}
