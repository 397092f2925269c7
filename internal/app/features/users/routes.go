// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Routes mounts all user management routes under the base path
// (typically "/users" from bootstrap). Every route is admin-only.
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeView)
		pr.Patch("/{id}/status", h.HandleStatus)
		pr.Patch("/{id}/role", h.HandleRole)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
