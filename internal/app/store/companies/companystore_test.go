package companystore_test

import (
	"errors"
	"testing"

	companystore "github.com/kindbridge/kindbridge/internal/app/store/companies"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"github.com/kindbridge/kindbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestCreate_OnePerOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	// The one-per-owner rule rides on the unique index EnsureSchema
	// creates at startup.
	_, err := db.Collection("companies").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("creating unique index: %v", err)
	}

	store := companystore.New(db)
	owner := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Company{
		Name:    "Acme Giving",
		OwnerID: owner,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = store.Create(ctx, models.Company{
		Name:    "Acme Giving Again",
		OwnerID: owner,
	})
	if !errors.Is(err, companystore.ErrOwnerHasCompany) {
		t.Errorf("second company for owner: got %v, want ErrOwnerHasCompany", err)
	}
}
