// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleRegister creates a new account and returns a session token.
// Self-service registration covers donor, company, and ngo roles; admin
// accounts are only created by other admins through the users feature.
//
// Route: POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	role, ok := authz.Parse(req.Role)
	if !ok || role == authz.RoleAdmin {
		httpjson.Error(w, http.StatusBadRequest, "Role must be donor, company, or ngo.")
		return
	}
	if len(req.Password) < 8 {
		httpjson.Error(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     string(role),
	}, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusConflict, "An account with this email already exists.")
			return
		}
		h.Log.Error("register: create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	tok, err := h.Tokens.Issue(user.ID.Hex(), role)
	if err != nil {
		h.Log.Error("register: token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	h.Audit.RegistrationCreated(ctx, r, user.ID, user.Email, user.Role)

	httpjson.Respond(w, http.StatusCreated, tokenResponse{
		Token: tok,
		User: userInfo{
			ID:       user.ID.Hex(),
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}
