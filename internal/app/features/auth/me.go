// internal/app/features/auth/me.go
package auth

import (
	"net/http"

	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
)

// HandleMe returns the authenticated principal. Because the gate
// re-reads the account on every request, this always reflects current
// role and status, not what the token was issued with.
//
// Route: GET /auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentPrincipal(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, sysauth.MsgInvalidToken)
		return
	}

	httpjson.Respond(w, http.StatusOK, userInfo{
		ID:       p.ID,
		FullName: p.Name,
		Email:    p.Email,
		Role:     string(p.Role),
	})
}
