package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authfeature "github.com/kindbridge/kindbridge/internal/app/features/auth"
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/token"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"github.com/kindbridge/kindbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func uniqueEmailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func userModel(fullName, email, role string) models.User {
	return models.User{FullName: fullName, Email: email, Role: role}
}

const testSecret = "0123456789abcdef0123456789abcdef"

func newHandler(t *testing.T) (*authfeature.Handler, *userstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	tokens, err := token.NewManager(testSecret, time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return authfeature.NewHandler(users, tokens, nil, zap.NewNop()), users, testutil.NewFixtures(t, db)
}

func postJSON(path, body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func decodeToken(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()
	var body struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return body.Token, body.User
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return body.Message
}

func TestRegister(t *testing.T) {
	h, _, _ := newHandler(t)

	rec, req := postJSON("/auth/register", `{
		"full_name": "Dana Donor",
		"email": "dana@example.com",
		"password": "s3cret-pass",
		"role": "donor"
	}`)
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %q)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	tok, user := decodeToken(t, rec)
	if tok == "" {
		t.Error("no token issued")
	}
	if user["email"] != "dana@example.com" || user["role"] != "donor" {
		t.Errorf("user info: %v", user)
	}
}

func TestRegister_Rejections(t *testing.T) {
	h, _, _ := newHandler(t)

	tests := []struct {
		name, body string
		wantStatus int
	}{
		{"admin role", `{"full_name":"X","email":"x@example.com","password":"s3cret-pass","role":"admin"}`, http.StatusBadRequest},
		{"unknown role", `{"full_name":"X","email":"x@example.com","password":"s3cret-pass","role":"superuser"}`, http.StatusBadRequest},
		{"short password", `{"full_name":"X","email":"x@example.com","password":"short","role":"donor"}`, http.StatusBadRequest},
		{"bad json", `{"full_name":`, http.StatusBadRequest},
		{"unknown field", `{"full_name":"X","email":"x@example.com","password":"s3cret-pass","role":"donor","is_admin":true}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec, req := postJSON("/auth/register", tt.body)
		h.HandleRegister(rec, req)
		if rec.Code != tt.wantStatus {
			t.Errorf("%s: got status %d, want %d", tt.name, rec.Code, tt.wantStatus)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	_, err := fx.DB().Collection("users").Indexes().CreateOne(ctx, uniqueEmailIndex())
	if err != nil {
		t.Fatalf("creating unique index: %v", err)
	}

	body := `{"full_name":"Dana","email":"dana@example.com","password":"s3cret-pass","role":"donor"}`
	rec, req := postJSON("/auth/register", body)
	h.HandleRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: got %d (body %q)", rec.Code, rec.Body.String())
	}

	rec, req = postJSON("/auth/register", body)
	h.HandleRegister(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: got %d, want %d", rec.Code, http.StatusConflict)
	}
	if got := messageOf(t, rec); got != "An account with this email already exists." {
		t.Errorf("message: %q", got)
	}
}

func TestLogin(t *testing.T) {
	h, users, _ := newHandler(t)
	ctx := testutil.TestContext(t)

	created, err := users.Create(ctx, userModel("Dana Donor", "dana@example.com", "donor"), "s3cret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec, req := postJSON("/auth/login", `{"email":"Dana@Example.com","password":"s3cret-pass"}`)
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %q)", rec.Code, rec.Body.String())
	}
	tok, user := decodeToken(t, rec)
	if tok == "" {
		t.Error("no token issued")
	}
	if user["id"] != created.ID.Hex() {
		t.Errorf("user id: got %v, want %s", user["id"], created.ID.Hex())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	h, users, _ := newHandler(t)
	ctx := testutil.TestContext(t)

	if _, err := users.Create(ctx, userModel("Dana Donor", "dana@example.com", "donor"), "s3cret-pass"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Unknown email and wrong password produce the identical response.
	const wantMsg = "Invalid email or password."
	for _, body := range []string{
		`{"email":"nobody@example.com","password":"s3cret-pass"}`,
		`{"email":"dana@example.com","password":"wrong-pass"}`,
	} {
		rec, req := postJSON("/auth/login", body)
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if got := messageOf(t, rec); got != wantMsg {
			t.Errorf("message: got %q, want %q", got, wantMsg)
		}
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	h, _, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	fx.CreateDisabledUser(ctx, "Gone Away", "gone@example.com")

	rec, req := postJSON("/auth/login", `{"email":"gone@example.com","password":"test-password"}`)
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
	if got := messageOf(t, rec); got != "Account is deactivated." {
		t.Errorf("message: %q", got)
	}
}
