// internal/app/features/ngos/public.go
package ngos

import (
	"context"
	"errors"
	"net/http"

	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList returns the public directory of verified, active NGOs.
//
// Route: GET /ngos?page=&limit=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ngos, total, err := h.NGOs.List(ctx, true, page, limit)
	if err != nil {
		h.Log.Error("ngos: public list failed", zap.Error(err))
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

// ServeView returns one NGO profile.
//
// Route: GET /ngos/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid NGO id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ngo, err := h.NGOs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "NGO not found.")
			return
		}
		h.Log.Error("ngos: view failed", zap.Error(err), zap.String("ngo_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load NGO.")
		return
	}

	httpjson.Respond(w, http.StatusOK, ngo)
}
