package users_test

import (
	"net/http"
	"testing"

	"github.com/kindbridge/kindbridge/internal/app/features/users"
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return users.NewHandler(userstore.New(db), nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleStatus(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	target := fx.CreateDonor(ctx, "Dana Donor", "dana@example.com")
	admin := testutil.AdminUser()

	req := testutil.NewAuthenticatedJSONRequest("PATCH",
		"/users/"+target.ID.Hex()+"/status", `{"status":"disabled"}`, admin)
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()

	h.HandleStatus(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "disabled")

	got, err := userstore.New(fx.DB()).GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != "disabled" {
		t.Errorf("status after change: got %q, want disabled", got.Status)
	}
}

func TestHandleStatus_SelfChangeRejected(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	self := fx.CreateAdmin(ctx, "Ada Admin", "ada@example.com")
	actor := testutil.TestUser{ID: self.ID.Hex(), Name: self.FullName, Email: self.Email, Role: "admin"}

	req := testutil.NewAuthenticatedJSONRequest("PATCH",
		"/users/"+self.ID.Hex()+"/status", `{"status":"disabled"}`, actor)
	req = testutil.WithChiURLParam(req, "id", self.ID.Hex())
	rec := testutil.NewRecorder()

	h.HandleStatus(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "You cannot change your own status.")
}

func TestHandleRole_UnknownUser(t *testing.T) {
	h, _ := newHandler(t)

	missing := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedJSONRequest("PATCH",
		"/users/"+missing+"/role", `{"role":"ngo"}`, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := testutil.NewRecorder()

	h.HandleRole(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "User not found.")
}

func TestHandleDelete(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	target := fx.CreateDonor(ctx, "Dana Donor", "dana@example.com")

	req := testutil.NewAuthenticatedRequest("DELETE",
		"/users/"+target.ID.Hex(), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()

	h.HandleDelete(rec, req)

	rec.AssertStatus(t, http.StatusNoContent)

	if _, err := userstore.New(fx.DB()).GetByID(ctx, target.ID); err == nil {
		t.Error("deleted user is still readable")
	}
}
