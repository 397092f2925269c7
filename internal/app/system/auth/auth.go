// internal/app/system/auth/auth.go

// Package auth is the request-pipeline gate for every protected route.
//
// Control flow per request:
//
//	Authorization header -> token.Manager.Verify -> PrincipalFetcher
//	(fresh DB lookup) -> authz.Evaluate -> principal attached to the
//	request context, or a typed JSON denial.
//
// The gate is fail-closed: any unexpected error inside it (storage
// failure, lookup timeout) is logged server-side with full detail and
// reported to the client as the generic invalid-token 401. Nothing
// propagates past the gate as a panic or an unhandled error.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Client-facing denial messages. Stable contract; clients and the
// frontend match on these strings.
const (
	MsgNoToken          = "Access denied. No token provided."
	MsgInvalidToken     = "Invalid token."
	MsgTokenExpired     = "Token expired."
	MsgUserNotFound     = "User not found."
	MsgAccountDisabled  = "Account is deactivated."
	MsgInsufficientRole = "Access denied. Insufficient permissions."
)

// Lookup failures returned by PrincipalFetcher implementations. The two
// cases are distinct on the wire: a missing account is a 401, a
// disabled one is a 403.
var (
	ErrNotFound = errors.New("principal not found")
	ErrInactive = errors.New("principal is deactivated")
)

// Principal is the authenticated actor resolved from a request's
// token. It is loaded fresh on every request - never cached across
// requests - so role and status changes take effect on the next
// request, and it is immutable for the request's lifetime.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  authz.Role
}

// ObjectID returns the principal's id as a Mongo ObjectID.
func (p *Principal) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(p.ID)
}

// PrincipalFetcher resolves a token subject to current account state.
// Implementations must return ErrNotFound / ErrInactive for those
// outcomes and must never return a principal alongside an error.
type PrincipalFetcher interface {
	FetchPrincipal(ctx context.Context, userID string) (*Principal, error)
}

type ctxKey struct{}

// CurrentPrincipal returns the principal attached by RequireAuth and a
// found flag.
func CurrentPrincipal(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(ctxKey{}).(*Principal)
	return p, ok
}

// WithTestPrincipal attaches a principal directly to the request
// context, bypassing the gate. Test helper only.
func WithTestPrincipal(r *http.Request, p *Principal) *http.Request {
	return withPrincipal(r, p)
}

func withPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, p))
}

// TokenAuth ties the token codec, the user directory, and the policy
// evaluator into chi middleware. All collaborators are injected;
// nothing here is a package-level singleton.
type TokenAuth struct {
	tokens *token.Manager
	users  PrincipalFetcher
	audit  *auditlog.Logger
	log    *zap.Logger
}

// New constructs the gate. audit may be nil in tests.
func New(tokens *token.Manager, users PrincipalFetcher, audit *auditlog.Logger, log *zap.Logger) *TokenAuth {
	return &TokenAuth{tokens: tokens, users: users, audit: audit, log: log}
}

// Tokens exposes the codec for the login/refresh handlers.
func (a *TokenAuth) Tokens() *token.Manager { return a.tokens }

// RequireAuth returns middleware enforcing the route's required-role
// set. An empty set admits any authenticated, active principal.
//
// Denial mapping (all bodies carry a stable "message" field):
//
//	no/empty bearer token            -> 401 MsgNoToken
//	malformed / bad signature        -> 401 MsgInvalidToken
//	expired                          -> 401 MsgTokenExpired
//	account missing                  -> 401 MsgUserNotFound
//	account disabled                 -> 403 MsgAccountDisabled
//	role not in required set         -> 403 MsgInsufficientRole
//	                                    + requiredRoles + userRole extras
//	anything unexpected (fail-closed)-> 401 MsgInvalidToken
func (a *TokenAuth) RequireAuth(required ...authz.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			claims, err := a.tokens.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpired):
					httpjson.Error(w, http.StatusUnauthorized, MsgTokenExpired)
				default:
					httpjson.Error(w, http.StatusUnauthorized, MsgInvalidToken)
				}
				return
			}

			p, err := a.users.FetchPrincipal(r.Context(), claims.UserID())
			if err != nil {
				switch {
				case errors.Is(err, ErrNotFound):
					httpjson.Error(w, http.StatusUnauthorized, MsgUserNotFound)
				case errors.Is(err, ErrInactive):
					httpjson.Error(w, http.StatusForbidden, MsgAccountDisabled)
				default:
					// Storage failure or lookup timeout. Deny, never allow.
					a.log.Error("auth gate: principal lookup failed",
						zap.String("user_id", claims.UserID()),
						zap.Error(err))
					httpjson.Error(w, http.StatusUnauthorized, MsgInvalidToken)
				}
				return
			}

			if !authz.Evaluate(required, p.Role) {
				a.auditDenied(r, p, required)
				httpjson.Respond(w, http.StatusForbidden, map[string]any{
					"message":       MsgInsufficientRole,
					"requiredRoles": authz.Strings(required),
					"userRole":      string(p.Role),
				})
				return
			}

			a.auditGranted(r, p)
			next.ServeHTTP(w, withPrincipal(r, p))
		})
	}
}

// auditGranted records a grant; it never fails the request.
func (a *TokenAuth) auditGranted(r *http.Request, p *Principal) {
	if a.audit == nil {
		return
	}
	oid, err := p.ObjectID()
	if err != nil {
		return
	}
	a.audit.AccessGranted(r.Context(), r, oid, p.Email, string(p.Role))
}

// auditDenied records a role-based denial; it never fails the request.
func (a *TokenAuth) auditDenied(r *http.Request, p *Principal, required []authz.Role) {
	if a.audit == nil {
		return
	}
	oid, err := p.ObjectID()
	if err != nil {
		return
	}
	a.audit.AccessDeniedRole(r.Context(), r, oid, p.Email, string(p.Role),
		strings.Join(authz.Strings(required), ","))
}

// bearerToken extracts the token from an "Authorization: Bearer <tok>"
// header value.
func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}
	tok := strings.TrimSpace(value[len(bearer):])
	if tok == "" {
		return "", false
	}
	return tok, true
}
