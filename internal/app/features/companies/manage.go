// internal/app/features/companies/manage.go
package companies

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	companystore "github.com/kindbridge/kindbridge/internal/app/store/companies"
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
	Website            string `json:"website"`
	ContactEmail       string `json:"contact_email"`
}

// HandleCreate registers the caller's company profile.
//
// Route: POST /companies
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

	company, err := h.Companies.Create(ctx, models.Company{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
		OwnerID:            ownerID,
	})
	if err != nil {
		if errors.Is(err, companystore.ErrOwnerHasCompany) {
			httpjson.Error(w, http.StatusConflict, "This account already owns a company.")
			return
		}
		h.Log.Error("companies: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "Failed to create company.")
		return
	}

	if err := h.Users.SetOrgRef(ctx, ownerID, "company_id", company.ID); err != nil {
		h.Log.Error("companies: setting owner back-reference failed",
			zap.Error(err), zap.String("company_id", company.ID.Hex()))
	}

	httpjson.Respond(w, http.StatusCreated, company)
}

// ServeMine returns the caller's own company profile.
//
// Route: GET /companies/mine
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

	company, err := h.Companies.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "You have not registered a company yet.")
			return
		}
		h.Log.Error("companies: load own profile failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load company.")
		return
	}

	httpjson.Respond(w, http.StatusOK, company)
}

// HandleUpdate edits the caller's own company profile.
//
// Route: PUT /companies/mine
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

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	company, err := h.Companies.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "You have not registered a company yet.")
			return
		}
		h.Log.Error("companies: load own profile failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update company.")
		return
	}

	if err := h.Companies.Update(ctx, company.ID, companystore.Update{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
	}); err != nil {
		h.Log.Error("companies: update failed", zap.Error(err), zap.String("company_id", company.ID.Hex()))
		httpjson.Error(w, http.StatusBadRequest, "Failed to update company.")
		return
	}

	updated, err := h.Companies.GetByID(ctx, company.ID)
	if err != nil {
		h.Log.Error("companies: reload after update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update company.")
		return
	}

	httpjson.Respond(w, http.StatusOK, updated)
}

// ServeAdminList returns every company for the admin view.
//
// Route: GET /companies?page=&limit=
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	companies, total, err := h.Companies.List(ctx, page, limit)
	if err != nil {
		h.Log.Error("companies: admin list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list companies.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"items": companies,
		"total": total,
	})
}
