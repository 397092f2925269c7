package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role and a bcrypt hash
// of the supplied password. Returns the created user with its ID.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, password, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "test-password", "admin")
}

// CreateDonor creates a test donor user.
func (f *Fixtures) CreateDonor(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "test-password", "donor")
}

// CreateDisabledUser creates a test user with disabled status.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, email, "test-password", "donor")
	_, err := f.db.Collection("users").UpdateOne(ctx,
		map[string]any{"_id": user.ID},
		map[string]any{"$set": map[string]any{"status": "disabled"}})
	if err != nil {
		f.t.Fatalf("failed to disable test user: %v", err)
	}
	user.Status = "disabled"
	return user
}

// CreateNGO creates a verified test NGO owned by the given account.
func (f *Fixtures) CreateNGO(ctx context.Context, name string, ownerID primitive.ObjectID) models.NGO {
	f.t.Helper()

	now := time.Now().UTC()
	ngo := models.NGO{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		NameCI:             text.Fold(name),
		RegistrationNumber: uuid.NewString(),
		Mission:            "Test mission statement",
		ContactEmail:       "contact@test.org",
		OwnerID:            ownerID,
		Verified:           true,
		Status:             "active",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := f.db.Collection("ngos").InsertOne(ctx, ngo)
	if err != nil {
		f.t.Fatalf("failed to create test ngo: %v", err)
	}

	return ngo
}

// CreateCompany creates a test company owned by the given account.
func (f *Fixtures) CreateCompany(ctx context.Context, name string, ownerID primitive.ObjectID) models.Company {
	f.t.Helper()

	now := time.Now().UTC()
	company := models.Company{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		ContactEmail: "contact@test.com",
		OwnerID:      ownerID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("companies").InsertOne(ctx, company)
	if err != nil {
		f.t.Fatalf("failed to create test company: %v", err)
	}

	return company
}

// CreateCampaign creates a test campaign in the given status.
func (f *Fixtures) CreateCampaign(ctx context.Context, title string, ngoID primitive.ObjectID, status string) models.Campaign {
	f.t.Helper()

	now := time.Now().UTC()
	campaign := models.Campaign{
		ID:         primitive.NewObjectID(),
		NGOID:      ngoID,
		Title:      title,
		TitleCI:    text.Fold(title),
		Category:   "education",
		GoalAmount: 100_000,
		Currency:   "USD",
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("campaigns").InsertOne(ctx, campaign)
	if err != nil {
		f.t.Fatalf("failed to create test campaign: %v", err)
	}

	return campaign
}

// CreateDonation creates a test donation in the given status.
func (f *Fixtures) CreateDonation(ctx context.Context, campaignID, donorID primitive.ObjectID, amount int64, status string) models.Donation {
	f.t.Helper()

	now := time.Now().UTC()
	donation := models.Donation{
		ID:            primitive.NewObjectID(),
		CampaignID:    campaignID,
		DonorID:       donorID,
		DonorRole:     "donor",
		Amount:        amount,
		Currency:      "USD",
		ReceiptNumber: uuid.NewString(),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := f.db.Collection("donations").InsertOne(ctx, donation)
	if err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}

	return donation
}
