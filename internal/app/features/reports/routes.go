// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Routes mounts all reporting routes under the base path (typically
// "/reports" from bootstrap). Every route is admin-only.
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleAdmin))
		pr.Get("/overview", h.ServeOverview)
		pr.Get("/campaigns/{id}", h.ServeCampaignReport)
		pr.Get("/ngos/{id}", h.ServeNGOReport)
	})

	return r
}
