package ngostore_test

import (
	"context"
	"errors"
	"testing"

	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"github.com/kindbridge/kindbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The stores rely on the indexes EnsureSchema creates at startup;
// tests recreate the unique ones they exercise.
func ensureIndexes(t *testing.T, ctx context.Context, db *mongo.Database) {
	t.Helper()
	_, err := db.Collection("ngos").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		t.Fatalf("creating indexes: %v", err)
	}
}

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	ensureIndexes(t, ctx, db)
	store := ngostore.New(db)

	created, err := store.Create(ctx, models.NGO{
		Name:               "  Helping   Hands ",
		RegistrationNumber: "REG-001",
		Mission:            "<b>Feed everyone</b>",
		ContactEmail:       " Contact@Helpers.ORG ",
		OwnerID:            primitive.NewObjectID(),
		Verified:           true, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Name != "Helping Hands" {
		t.Errorf("name: got %q, want %q", created.Name, "Helping Hands")
	}
	if created.Mission != "Feed everyone" {
		t.Errorf("mission not sanitized: %q", created.Mission)
	}
	if created.ContactEmail != "contact@helpers.org" {
		t.Errorf("contact email: got %q", created.ContactEmail)
	}
	if created.Verified {
		t.Error("new NGO must start unverified")
	}
}

func TestCreate_OnePerOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	ensureIndexes(t, ctx, db)
	store := ngostore.New(db)

	owner := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.NGO{
		Name:               "First",
		RegistrationNumber: "REG-001",
		OwnerID:            owner,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same owner, fresh registration number: the owner_id unique index
	// rejects it even when two creates race past any earlier read.
	_, err := store.Create(ctx, models.NGO{
		Name:               "Second",
		RegistrationNumber: "REG-002",
		OwnerID:            owner,
	})
	if !errors.Is(err, ngostore.ErrOwnerHasNGO) {
		t.Errorf("second NGO for owner: got %v, want ErrOwnerHasNGO", err)
	}
}

func TestCreate_DuplicateRegistration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	ensureIndexes(t, ctx, db)
	store := ngostore.New(db)

	if _, err := store.Create(ctx, models.NGO{
		Name:               "First",
		RegistrationNumber: "REG-001",
		OwnerID:            primitive.NewObjectID(),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := store.Create(ctx, models.NGO{
		Name:               "Second",
		RegistrationNumber: "REG-001",
		OwnerID:            primitive.NewObjectID(),
	})
	if !errors.Is(err, ngostore.ErrDuplicateRegistration) {
		t.Errorf("duplicate registration: got %v, want ErrDuplicateRegistration", err)
	}
}

func TestList_VerifiedOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	ensureIndexes(t, ctx, db)
	store := ngostore.New(db)
	fx := testutil.NewFixtures(t, db)

	fx.CreateNGO(ctx, "Visible", primitive.NewObjectID())
	if _, err := store.Create(ctx, models.NGO{
		Name:               "Hidden",
		RegistrationNumber: "REG-900",
		OwnerID:            primitive.NewObjectID(),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	public, total, err := store.List(ctx, true, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(public) != 1 || public[0].Name != "Visible" {
		t.Errorf("verified-only list: got %d (total %d)", len(public), total)
	}

	all, total, err := store.List(ctx, false, 1, 10)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("admin list: got %d (total %d), want 2", len(all), total)
	}
}
