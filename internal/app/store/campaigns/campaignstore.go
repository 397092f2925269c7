// internal/app/store/campaigns/campaignstore.go
package campaignstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/kindbridge/kindbridge/internal/app/system/htmlsanitize"
	"github.com/kindbridge/kindbridge/internal/app/system/normalize"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrInvalidTransition is returned for a status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid campaign status transition")
	// ErrNotEditable is returned when editing a campaign that is no longer pending or active.
	ErrNotEditable  = errors.New("campaign can no longer be edited")
	errMissingTitle = errors.New("campaign title is required")
	errBadGoal      = errors.New("goal amount must be positive")
)

// transitions is the campaign lifecycle. Keys are current status,
// values the set of statuses an admin may move to.
var transitions = map[string][]string{
	models.CampaignPending:   {models.CampaignActive, models.CampaignRejected},
	models.CampaignActive:    {models.CampaignSuspended, models.CampaignCompleted},
	models.CampaignSuspended: {models.CampaignActive},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("campaigns")}
}

// Create inserts a new campaign in pending status, awaiting admin review.
func (s *Store) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	c.ID = primitive.NewObjectID()
	c.Title = normalize.Name(c.Title)
	c.TitleCI = text.Fold(c.Title)
	c.Description = htmlsanitize.Text(c.Description)
	c.Status = models.CampaignPending
	c.RaisedAmount = 0
	if c.Currency == "" {
		c.Currency = "USD"
	}

	if c.Title == "" {
		return models.Campaign{}, errMissingTitle
	}
	if c.GoalAmount <= 0 {
		return models.Campaign{}, errBadGoal
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Campaign{}, err
	}
	return c, nil
}

// GetByID loads a campaign by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var c models.Campaign
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update holds the NGO-editable fields. Edits are only allowed while
// the campaign is pending or active.
type Update struct {
	Title       string
	Description string
	Category    string
	GoalAmount  int64
	EndsAt      *time.Time
}

// Update applies owner edits to a pending or active campaign.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	title := normalize.Name(upd.Title)
	if title == "" {
		return errMissingTitle
	}
	if upd.GoalAmount <= 0 {
		return errBadGoal
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":    id,
			"status": bson.M{"$in": []string{models.CampaignPending, models.CampaignActive}},
		},
		bson.M{"$set": bson.M{
			"title":       title,
			"title_ci":    text.Fold(title),
			"description": htmlsanitize.Text(upd.Description),
			"category":    upd.Category,
			"goal_amount": upd.GoalAmount,
			"ends_at":     upd.EndsAt,
			"updated_at":  time.Now(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the campaign does not exist or its status forbids edits.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNotEditable
	}
	return nil
}

// Transition moves a campaign through its lifecycle. The filter pins
// the expected current status so concurrent admin actions cannot race
// a campaign through two transitions.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Someone else moved it first, or it does not exist.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: campaign is no longer %s", ErrInvalidTransition, from)
	}
	return nil
}

// AddRaised atomically adjusts the raised total. delta is negative for
// refunds. The returned campaign reflects the new total so the caller
// can decide whether the goal has been reached.
func (s *Store) AddRaised(ctx context.Context, id primitive.ObjectID, delta int64) (*models.Campaign, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Campaign
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"raised_amount": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
		after).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListFilter narrows List results. Anonymous callers see only active
// campaigns; admins may filter by any status.
type ListFilter struct {
	NGOID    *primitive.ObjectID
	Category string
	Status   string
	Search   string
}

// List returns campaigns matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter, page, limit int64) ([]models.Campaign, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if page < 1 {
		page = 1
	}

	filter := bson.M{}
	if f.NGOID != nil {
		filter["ngo_id"] = *f.NGOID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = normalize.Status(f.Status)
	}
	if f.Search != "" {
		fq := text.Fold(f.Search)
		if fq != "" {
			filter["title_ci"] = bson.M{"$gte": fq, "$lt": fq + "\uffff"}
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var campaigns []models.Campaign
	if err := cur.All(ctx, &campaigns); err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}
