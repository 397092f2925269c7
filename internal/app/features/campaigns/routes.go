// internal/app/features/campaigns/routes.go
package campaigns

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Routes mounts all campaign routes under the base path (typically
// "/campaigns" from bootstrap).
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	// NGO operator routes.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleNGO))
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.ServeMine)
		pr.Put("/{id}", h.HandleUpdate)
	})

	// Admin review queue and lifecycle transitions.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleAdmin))
		pr.Get("/admin/all", h.ServeAdminList)
		pr.Patch("/{id}/status", h.HandleTransition)
	})

	// Public catalog.
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	return r
}
