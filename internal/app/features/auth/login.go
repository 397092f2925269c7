// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/normalize"
	"github.com/kindbridge/kindbridge/internal/app/system/status"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgBadCredentials = "Invalid email or password."

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a session token.
// Missing accounts and wrong passwords produce the same 401 so the
// endpoint does not leak which emails are registered.
//
// Route: POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Audit.LoginFailed(ctx, r, nil, normalize.Email(req.Email), "unknown email")
			httpjson.Error(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		h.Log.Error("login: lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	if !userstore.CheckPassword(user, req.Password) {
		h.Audit.LoginFailed(ctx, r, &user.ID, user.Email, "wrong password")
		httpjson.Error(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	if normalize.Status(user.Status) != status.Active {
		h.Audit.LoginFailed(ctx, r, &user.ID, user.Email, "account deactivated")
		httpjson.Error(w, http.StatusForbidden, "Account is deactivated.")
		return
	}

	role, ok := authz.Parse(user.Role)
	if !ok {
		h.Log.Error("login: account has unknown role",
			zap.String("user_id", user.ID.Hex()),
			zap.String("role", user.Role))
		httpjson.Error(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	tok, err := h.Tokens.Issue(user.ID.Hex(), role)
	if err != nil {
		h.Log.Error("login: token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	h.Audit.LoginSuccess(ctx, r, user.ID, user.Email)

	httpjson.Respond(w, http.StatusOK, tokenResponse{
		Token: tok,
		User: userInfo{
			ID:       user.ID.Hex(),
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}
