// internal/app/features/users/view.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeView returns one user record. The credential hash is never part
// of the store's projection, so it cannot leak here.
//
// Route: GET /users/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found.")
			return
		}
		h.Log.Error("users: view failed", zap.Error(err), zap.String("user_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to load user.")
		return
	}

	httpjson.Respond(w, http.StatusOK, user)
}
