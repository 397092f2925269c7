// internal/app/features/ngos/admin.go
package ngos

import (
	"context"
	"errors"
	"net/http"

	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeAdminList returns every NGO, including unverified and disabled
// ones, for the admin review queue.
//
// Route: GET /ngos/admin/all?page=&limit=
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngos, total, err := h.NGOs.List(ctx, false, page, limit)
	if err != nil {
		h.Log.Error("ngos: admin list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list NGOs.")
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{
		Items: ngos,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

// HandleVerify sets or clears an NGO's verified flag after admin
// review. Only verified NGOs can have campaigns activated.
//
// Route: PATCH /ngos/{id}/verify
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid NGO id.")
		return
	}

	var req verifyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngo, err := h.NGOs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "NGO not found.")
			return
		}
		h.Log.Error("ngos: verify lookup failed", zap.Error(err), zap.String("ngo_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to verify NGO.")
		return
	}

	if err := h.NGOs.SetVerified(ctx, oid, req.Verified); err != nil {
		h.Log.Error("ngos: verify failed", zap.Error(err), zap.String("ngo_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to verify NGO.")
		return
	}

	if req.Verified {
		if actor, ok := sysauth.CurrentPrincipal(r); ok {
			if actorID, err := actor.ObjectID(); err == nil {
				h.Audit.NGOVerified(ctx, r, actorID, oid, ngo.Name)
			}
		}
	}

	httpjson.Respond(w, http.StatusOK, map[string]bool{"verified": req.Verified})
}
