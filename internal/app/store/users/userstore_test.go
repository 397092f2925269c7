package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"github.com/kindbridge/kindbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexUniqueEmail() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func TestCreate_NormalizesAndHashes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "  Dana   Donor ",
		Email:    " Dana@Example.COM ",
		Role:     "Donor",
	}, "s3cret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.FullName != "Dana Donor" {
		t.Errorf("full name: got %q, want %q", created.FullName, "Dana Donor")
	}
	if created.Email != "dana@example.com" {
		t.Errorf("email: got %q, want %q", created.Email, "dana@example.com")
	}
	if created.Role != "donor" {
		t.Errorf("role: got %q, want donor", created.Role)
	}
	if created.Status != "active" {
		t.Errorf("status: got %q, want active", created.Status)
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cret-pass" {
		t.Error("password was not hashed")
	}
	if !userstore.CheckPassword(&created, "s3cret-pass") {
		t.Error("CheckPassword rejected the correct password")
	}
	if userstore.CheckPassword(&created, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{
		FullName: "X",
		Email:    "x@example.com",
		Role:     "superuser",
	}, "s3cret-pass"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestGetByID_ExcludesHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "Dana Donor",
		Email:    "dana@example.com",
		Role:     "donor",
	}, "s3cret-pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PasswordHash != "" {
		t.Error("GetByID leaked the credential hash")
	}
	if got.Email != "dana@example.com" {
		t.Errorf("email: got %q", got.Email)
	}
}

func TestUpdateStatusAndRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	user := fx.CreateDonor(ctx, "Dana Donor", "dana@example.com")

	if err := store.UpdateStatus(ctx, user.ID, "disabled"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := store.UpdateStatus(ctx, user.ID, "frozen"); err == nil {
		t.Error("expected error for unknown status")
	}

	if err := store.UpdateRole(ctx, user.ID, "ngo"); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if err := store.UpdateRole(ctx, user.ID, "root"); err == nil {
		t.Error("expected error for unknown role")
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != "disabled" || got.Role != "ngo" {
		t.Errorf("after updates: status=%q role=%q", got.Status, got.Role)
	}
}

func TestFetchPrincipal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	fetcher := userstore.NewFetcher(db)

	user := fx.CreateDonor(ctx, "Dana Donor", "dana@example.com")

	p, err := fetcher.FetchPrincipal(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("FetchPrincipal: %v", err)
	}
	if p.ID != user.ID.Hex() || p.Email != "dana@example.com" || p.Role != authz.RoleDonor {
		t.Errorf("principal: %+v", p)
	}
}

func TestFetchPrincipal_Denials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	fetcher := userstore.NewFetcher(db)

	// Malformed id and unknown id both read as not-found.
	if _, err := fetcher.FetchPrincipal(ctx, "not-a-hex-id"); !errors.Is(err, auth.ErrNotFound) {
		t.Errorf("malformed id: got %v, want ErrNotFound", err)
	}
	if _, err := fetcher.FetchPrincipal(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, auth.ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}

	// Disabled accounts are distinct from missing ones.
	disabled := fx.CreateDisabledUser(ctx, "Gone Away", "gone@example.com")
	if _, err := fetcher.FetchPrincipal(ctx, disabled.ID.Hex()); !errors.Is(err, auth.ErrInactive) {
		t.Errorf("disabled account: got %v, want ErrInactive", err)
	}

	// A corrupt role in the stored account fails closed as not-found.
	weird := fx.CreateDonor(ctx, "Odd Role", "odd@example.com")
	_, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": weird.ID},
		bson.M{"$set": bson.M{"role": "superuser"}})
	if err != nil {
		t.Fatalf("seeding corrupt role: %v", err)
	}
	if _, err := fetcher.FetchPrincipal(ctx, weird.ID.Hex()); !errors.Is(err, auth.ErrNotFound) {
		t.Errorf("corrupt role: got %v, want ErrNotFound", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	// The unique index is normally created by EnsureSchema at startup.
	_, err := db.Collection("users").Indexes().CreateOne(ctx, indexUniqueEmail())
	if err != nil {
		t.Fatalf("creating unique index: %v", err)
	}

	if _, err := store.Create(ctx, models.User{
		FullName: "First",
		Email:    "dup@example.com",
		Role:     "donor",
	}, "s3cret-pass"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = store.Create(ctx, models.User{
		FullName: "Second",
		Email:    "DUP@example.com",
		Role:     "donor",
	}, "s3cret-pass")
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("duplicate email: got %v, want ErrDuplicateEmail", err)
	}
}

func TestList_SearchAndFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	fx.CreateDonor(ctx, "Alice Donor", "alice@example.com")
	fx.CreateDonor(ctx, "Bob Donor", "bob@example.com")
	fx.CreateAdmin(ctx, "Ada Admin", "ada@example.com")

	admins, total, err := store.List(ctx, userstore.ListFilter{Role: "admin"}, 1, 10)
	if err != nil {
		t.Fatalf("List by role: %v", err)
	}
	if total != 1 || len(admins) != 1 || admins[0].Email != "ada@example.com" {
		t.Errorf("admin filter: got %d users (total %d)", len(admins), total)
	}

	found, total, err := store.List(ctx, userstore.ListFilter{Search: "ali"}, 1, 10)
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if total != 1 || len(found) != 1 || found[0].FullName != "Alice Donor" {
		t.Errorf("search: got %d users (total %d)", len(found), total)
	}
	for _, u := range found {
		if u.PasswordHash != "" {
			t.Error("List leaked a credential hash")
		}
	}
}
