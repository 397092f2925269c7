// internal/app/features/auth/handler.go

// Package auth serves the credential endpoints: registration, login,
// token refresh, and the current-principal lookup. The middleware that
// guards other routes lives in internal/app/system/auth; this package
// is only the HTTP surface that hands tokens out.
package auth

import (
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	"github.com/kindbridge/kindbridge/internal/app/system/token"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for authentication.
type Handler struct {
	Users  *userstore.Store
	Tokens *token.Manager
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs an auth handler bound to the user store and
// token manager.
func NewHandler(users *userstore.Store, tokens *token.Manager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		Audit:  audit,
		Log:    logger,
	}
}

// tokenResponse is the body returned by login, register, and refresh.
type tokenResponse struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

// userInfo is the public projection of an account.
type userInfo struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
