// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
)

// Routes mounts the authentication routes under the base path
// (typically "/auth" from bootstrap).
func Routes(h *Handler, gate *sysauth.TokenAuth) chi.Router {
	r := chi.NewRouter()

	// Credential endpoints, open to anonymous callers.
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Token-bearing endpoints. No role restriction: any authenticated,
	// active account may refresh or introspect its own session.
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAuth())
		pr.Post("/refresh", h.HandleRefresh)
		pr.Get("/me", h.HandleMe)
	})

	return r
}
