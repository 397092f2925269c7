// internal/app/features/donations/routes.go
package donations

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Routes mounts all donation routes under the base path (typically
// "/donations" from bootstrap).
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	// Giving routes for individual donors and companies.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleDonor, authz.RoleCompany))
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.ServeMine)
	})

	// Campaign-scoped listing for NGO operators and admins.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleNGO, authz.RoleAdmin))
		pr.Get("/campaign/{id}", h.ServeByCampaign)
	})

	// Settlement routes for admins.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleAdmin))
		pr.Get("/admin/all", h.ServeAdminList)
		pr.Patch("/{id}/status", h.HandleTransition)
	})

	// Any authenticated caller may fetch a donation; the handler scopes
	// access to the owner or an admin.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth())
		pr.Get("/{id}", h.ServeView)
	})

	return r
}
