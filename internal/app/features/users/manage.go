// internal/app/features/users/manage.go
package users

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

type statusRequest struct {
	Status string `json:"status"`
}

// HandleStatus activates or deactivates an account. Deactivation takes
// effect on the target's very next request because the gate re-reads
// the account every time; outstanding tokens do not need revoking.
//
// Route: PATCH /users/{id}/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	actor, _ := sysauth.CurrentPrincipal(r)
	if actor != nil && actor.ID == oid.Hex() {
		httpjson.Error(w, http.StatusBadRequest, "You cannot change your own status.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateStatus(ctx, oid, req.Status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found.")
			return
		}
		h.Log.Error("users: status update failed", zap.Error(err), zap.String("user_id", oid.Hex()))
		httpjson.Error(w, http.StatusBadRequest, "Status must be active or disabled.")
		return
	}

	if actor != nil {
		if actorID, err := actor.ObjectID(); err == nil {
			h.Audit.UserStatusChanged(ctx, r, actorID, oid, req.Status)
		}
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{"status": req.Status})
}

type roleRequest struct {
	Role string `json:"role"`
}

// HandleRole changes an account's role. Like status changes, the new
// role applies on the target's next request.
//
// Route: PATCH /users/{id}/role
func (h *Handler) HandleRole(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req roleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	actor, _ := sysauth.CurrentPrincipal(r)
	if actor != nil && actor.ID == oid.Hex() {
		httpjson.Error(w, http.StatusBadRequest, "You cannot change your own role.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateRole(ctx, oid, req.Role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found.")
			return
		}
		h.Log.Error("users: role update failed", zap.Error(err), zap.String("user_id", oid.Hex()))
		httpjson.Error(w, http.StatusBadRequest, "Role must be donor, company, ngo, or admin.")
		return
	}

	if actor != nil {
		if actorID, err := actor.ObjectID(); err == nil {
			h.Audit.UserRoleChanged(ctx, r, actorID, oid, req.Role)
		}
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{"role": req.Role})
}

// HandleDelete removes an account record. Donation history references
// the donor by id and is intentionally left in place for receipts and
// reporting.
//
// Route: DELETE /users/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	actor, _ := sysauth.CurrentPrincipal(r)
	if actor != nil && actor.ID == oid.Hex() {
		httpjson.Error(w, http.StatusBadRequest, "You cannot delete your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found.")
			return
		}
		h.Log.Error("users: delete failed", zap.Error(err), zap.String("user_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete user.")
		return
	}

	if actor != nil {
		if actorID, err := actor.ObjectID(); err == nil {
			h.Audit.UserDeleted(ctx, r, actorID, oid)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
