// internal/app/features/ngos/routes.go
package ngos

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

// Routes mounts all NGO routes under the base path (typically "/ngos"
// from bootstrap).
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	// NGO operator routes. Registered before the public /{id} route so
	// chi matches the literal segments first.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleNGO))
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.ServeMine)
		pr.Put("/mine", h.HandleUpdate)
	})

	// Admin review routes.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth(authz.RoleAdmin))
		pr.Get("/admin/all", h.ServeAdminList)
		pr.Patch("/{id}/verify", h.HandleVerify)
	})

	// Public directory.
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	return r
}
