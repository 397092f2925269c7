package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/app/system/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeFetcher is a PrincipalFetcher with scripted results per user id.
type fakeFetcher struct {
	principals map[string]*auth.Principal
	errs       map[string]error
}

func (f *fakeFetcher) FetchPrincipal(ctx context.Context, userID string) (*auth.Principal, error) {
	if err, ok := f.errs[userID]; ok {
		return nil, err
	}
	if p, ok := f.principals[userID]; ok {
		return p, nil
	}
	return nil, auth.ErrNotFound
}

// okHandler records whether the gate admitted the request and what
// principal it attached.
type okHandler struct {
	called    bool
	principal *auth.Principal
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.principal, _ = auth.CurrentPrincipal(r)
	w.WriteHeader(http.StatusOK)
}

func newGate(t *testing.T, users auth.PrincipalFetcher) (*auth.TokenAuth, *token.Manager) {
	t.Helper()
	tokens, err := token.NewManager(testSecret, time.Hour, 0)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return auth.New(tokens, users, nil, zap.NewNop()), tokens
}

func checkMessage(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantMsg string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Errorf("status: got %d, want %d", rec.Code, wantStatus)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	if body.Message != wantMsg {
		t.Errorf("message: got %q, want %q", body.Message, wantMsg)
	}
}

func TestRequireAuth_NoToken(t *testing.T) {
	gate, _ := newGate(t, &fakeFetcher{})
	next := &okHandler{}

	for _, header := range []string{"", "Bearer ", "Bearer    ", "Basic abc"} {
		req := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		gate.RequireAuth()(next).ServeHTTP(rec, req)

		checkMessage(t, rec, http.StatusUnauthorized, auth.MsgNoToken)
		if next.called {
			t.Fatalf("header %q: protected handler ran without a token", header)
		}
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	gate, _ := newGate(t, &fakeFetcher{})
	next := &okHandler{}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	gate.RequireAuth()(next).ServeHTTP(rec, req)

	checkMessage(t, rec, http.StatusUnauthorized, auth.MsgInvalidToken)
	if next.called {
		t.Fatal("protected handler ran with a malformed token")
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	gate, _ := newGate(t, &fakeFetcher{})
	next := &okHandler{}

	// Sign with the same secret but an already-past expiry.
	shortLived, err := token.NewManager(testSecret, time.Millisecond, 0)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	tok, err := shortLived.Issue(primitive.NewObjectID().Hex(), authz.RoleDonor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth()(next).ServeHTTP(rec, req)

	checkMessage(t, rec, http.StatusUnauthorized, auth.MsgTokenExpired)
}

func TestRequireAuth_UserNotFound(t *testing.T) {
	gate, tokens := newGate(t, &fakeFetcher{})
	next := &okHandler{}

	tok, err := tokens.Issue(primitive.NewObjectID().Hex(), authz.RoleDonor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth()(next).ServeHTTP(rec, req)

	checkMessage(t, rec, http.StatusUnauthorized, auth.MsgUserNotFound)
}

func TestRequireAuth_DeactivatedAfterIssuance(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	gate, tokens := newGate(t, &fakeFetcher{
		errs: map[string]error{id: auth.ErrInactive},
	})
	next := &okHandler{}

	// Token was valid when issued; the account has since been disabled.
	tok, err := tokens.Issue(id, authz.RoleDonor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth()(next).ServeHTTP(rec, req)

	checkMessage(t, rec, http.StatusForbidden, auth.MsgAccountDisabled)
	if next.called {
		t.Fatal("protected handler ran for a deactivated account")
	}
}

func TestRequireAuth_FetcherFailureDenies(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	gate, tokens := newGate(t, &fakeFetcher{
		errs: map[string]error{id: errors.New("connection reset by peer")},
	})
	next := &okHandler{}

	tok, err := tokens.Issue(id, authz.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth()(next).ServeHTTP(rec, req)

	// Storage failures deny with the generic body; nothing about the
	// internal error leaks to the client.
	checkMessage(t, rec, http.StatusUnauthorized, auth.MsgInvalidToken)
	if next.called {
		t.Fatal("protected handler ran despite lookup failure")
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Error("internal error detail leaked into the response body")
	}
}

func TestRequireAuth_InsufficientRole(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	gate, tokens := newGate(t, &fakeFetcher{
		principals: map[string]*auth.Principal{
			id: {ID: id, Name: "Dana Donor", Email: "dana@example.com", Role: authz.RoleDonor},
		},
	})
	next := &okHandler{}

	tok, err := tokens.Issue(id, authz.RoleDonor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth(authz.RoleAdmin, authz.RoleNGO)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body struct {
		Message       string   `json:"message"`
		RequiredRoles []string `json:"requiredRoles"`
		UserRole      string   `json:"userRole"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Message != auth.MsgInsufficientRole {
		t.Errorf("message: got %q, want %q", body.Message, auth.MsgInsufficientRole)
	}
	if len(body.RequiredRoles) != 2 || body.RequiredRoles[0] != "admin" || body.RequiredRoles[1] != "ngo" {
		t.Errorf("requiredRoles: got %v, want [admin ngo]", body.RequiredRoles)
	}
	if body.UserRole != "donor" {
		t.Errorf("userRole: got %q, want %q", body.UserRole, "donor")
	}
	if next.called {
		t.Fatal("protected handler ran despite insufficient role")
	}
}

func TestRequireAuth_Success(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	gate, tokens := newGate(t, &fakeFetcher{
		principals: map[string]*auth.Principal{
			id: {ID: id, Name: "Ada Admin", Email: "ada@example.com", Role: authz.RoleAdmin},
		},
	})
	next := &okHandler{}

	tok, err := tokens.Issue(id, authz.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth(authz.RoleAdmin)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !next.called {
		t.Fatal("protected handler did not run")
	}
	if next.principal == nil || next.principal.ID != id {
		t.Fatalf("principal not attached: %+v", next.principal)
	}
	if next.principal.Role != authz.RoleAdmin {
		t.Errorf("principal role: got %q, want admin", next.principal.Role)
	}
}

// The gate trusts the directory, not the token: a role claim baked
// into an old token does not matter once the account's role changed.
func TestRequireAuth_FreshRoleWins(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	gate, tokens := newGate(t, &fakeFetcher{
		principals: map[string]*auth.Principal{
			id: {ID: id, Name: "Demoted", Email: "x@example.com", Role: authz.RoleDonor},
		},
	})
	next := &okHandler{}

	// Token still claims admin.
	tok, err := tokens.Issue(id, authz.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	gate.RequireAuth(authz.RoleAdmin)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if next.called {
		t.Fatal("stale admin claim admitted a demoted account")
	}
}
