// internal/app/store/ngos/ngostore.go
package ngostore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/kindbridge/kindbridge/internal/app/system/htmlsanitize"
	"github.com/kindbridge/kindbridge/internal/app/system/normalize"
	"github.com/kindbridge/kindbridge/internal/app/system/status"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateRegistration is returned when the registration number is already taken.
	ErrDuplicateRegistration = errors.New("an NGO with this registration number already exists")
	// ErrOwnerHasNGO is returned when the owner already registered an NGO.
	ErrOwnerHasNGO = errors.New("this account already owns an NGO")
	errMissingName = errors.New("ngo name is required")
	errMissingReg  = errors.New("registration number is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ngos")}
}

// Create inserts a new NGO after normalizing & validating fields.
// One NGO per owner account.
func (s *Store) Create(ctx context.Context, n models.NGO) (models.NGO, error) {
	n.ID = primitive.NewObjectID()
	n.Name = normalize.Name(n.Name)
	n.NameCI = text.Fold(n.Name)
	n.Mission = htmlsanitize.Text(n.Mission)
	n.ContactEmail = normalize.Email(n.ContactEmail)
	n.Verified = false
	if n.Status == "" {
		n.Status = status.Active
	}

	if n.Name == "" {
		return models.NGO{}, errMissingName
	}
	if n.RegistrationNumber == "" {
		return models.NGO{}, errMissingReg
	}

	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	// Both the registration number and the owner carry unique indexes,
	// so concurrent creates cannot slip past; the insert is the only
	// authority on either rule.
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		if wafflemongo.IsDup(err) {
			if count, cErr := s.c.CountDocuments(ctx, bson.M{"owner_id": n.OwnerID}); cErr == nil && count > 0 {
				return models.NGO{}, ErrOwnerHasNGO
			}
			return models.NGO{}, ErrDuplicateRegistration
		}
		return models.NGO{}, err
	}
	return n, nil
}

// GetByID loads an NGO by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.NGO, error) {
	var n models.NGO
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByOwner loads the NGO owned by the given account.
func (s *Store) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.NGO, error) {
	var n models.NGO
	if err := s.c.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update holds the owner-editable fields.
type Update struct {
	Name         string
	Mission      string
	Website      string
	ContactEmail string
}

// Update applies owner edits. Verification is not touched here; only
// an admin can set it via SetVerified.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	name := normalize.Name(upd.Name)
	if name == "" {
		return errMissingName
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":          name,
		"name_ci":       text.Fold(name),
		"mission":       htmlsanitize.Text(upd.Mission),
		"website":       upd.Website,
		"contact_email": normalize.Email(upd.ContactEmail),
		"updated_at":    time.Now(),
	}})
	return err
}

// SetVerified flips the admin verification flag.
func (s *Store) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"verified":   verified,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns NGOs sorted by folded name. When verifiedOnly is set,
// unverified or disabled NGOs are excluded (the anonymous listing).
func (s *Store) List(ctx context.Context, verifiedOnly bool, page, limit int64) ([]models.NGO, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if page < 1 {
		page = 1
	}

	filter := bson.M{}
	if verifiedOnly {
		filter["verified"] = true
		filter["status"] = status.Active
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	find := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var ngos []models.NGO
	if err := cur.All(ctx, &ngos); err != nil {
		return nil, 0, err
	}
	return ngos, total, nil
}
