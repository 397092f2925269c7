// internal/app/store/companies/companystore.go
package companystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/kindbridge/kindbridge/internal/app/system/normalize"
	"github.com/kindbridge/kindbridge/internal/app/system/status"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrOwnerHasCompany is returned when the owner already registered a company.
	ErrOwnerHasCompany = errors.New("this account already owns a company")
	errMissingName     = errors.New("company name is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("companies")}
}

// Create inserts a new company profile. One company per owner account.
func (s *Store) Create(ctx context.Context, co models.Company) (models.Company, error) {
	co.ID = primitive.NewObjectID()
	co.Name = normalize.Name(co.Name)
	co.NameCI = text.Fold(co.Name)
	co.ContactEmail = normalize.Email(co.ContactEmail)
	if co.Status == "" {
		co.Status = status.Active
	}

	if co.Name == "" {
		return models.Company{}, errMissingName
	}

	now := time.Now()
	co.CreatedAt = now
	co.UpdatedAt = now

	// owner_id is unique, so a concurrent second create loses at the
	// insert instead of slipping past a pre-check.
	if _, err := s.c.InsertOne(ctx, co); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Company{}, ErrOwnerHasCompany
		}
		return models.Company{}, err
	}
	return co, nil
}

// GetByID loads a company by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	var co models.Company
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&co); err != nil {
		return nil, err
	}
	return &co, nil
}

// GetByOwner loads the company owned by the given account.
func (s *Store) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Company, error) {
	var co models.Company
	if err := s.c.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&co); err != nil {
		return nil, err
	}
	return &co, nil
}

// Update holds the owner-editable fields.
type Update struct {
	Name               string
	RegistrationNumber string
	Website            string
	ContactEmail       string
}

// Update applies owner edits.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	name := normalize.Name(upd.Name)
	if name == "" {
		return errMissingName
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":                name,
		"name_ci":             text.Fold(name),
		"registration_number": upd.RegistrationNumber,
		"website":             upd.Website,
		"contact_email":       normalize.Email(upd.ContactEmail),
		"updated_at":          time.Now(),
	}})
	return err
}

// List returns companies sorted by folded name (admin view).
func (s *Store) List(ctx context.Context, page, limit int64) ([]models.Company, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if page < 1 {
		page = 1
	}

	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	find := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var companies []models.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}
