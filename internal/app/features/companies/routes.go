// internal/app/features/companies/routes.go
package companies

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Routes mounts all company routes under the base path (typically
// "/companies" from bootstrap).
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	// Company representative routes.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleCompany))
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.ServeMine)
		pr.Put("/mine", h.HandleUpdate)
	})

	// Admin view.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleAdmin))
		pr.Get("/", h.ServeAdminList)
	})

	return r
}
