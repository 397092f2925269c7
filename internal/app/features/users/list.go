// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList returns a paginated user listing with optional role,
// status, and search filters.
//
// Route: GET /users?role=&status=&search=&page=&limit=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, total, err := h.Users.List(ctx, userstore.ListFilter{
		Role:   q.Get("role"),
		Status: q.Get("status"),
		Search: q.Get("search"),
	}, page, limit)
	if err != nil {
		h.Log.Error("users: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list users.")
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{
		Items: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
