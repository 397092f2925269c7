// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kindbridge/kindbridge/internal/app/system/htmlsanitize"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrInvalidTransition is returned for a status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid donation status transition")
	errBadAmount         = errors.New("donation amount must be positive")
)

// transitions is the donation lifecycle.
var transitions = map[string][]string{
	models.DonationPending:   {models.DonationCompleted, models.DonationFailed},
	models.DonationCompleted: {models.DonationRefunded},
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
	return &Store{c: db.Collection("donations")}
}

// Create inserts a new donation in pending status and assigns its
// receipt number. Settlement (the pending -> completed move) happens
// later, when the external payment confirmation arrives.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	if d.Amount <= 0 {
		return models.Donation{}, errBadAmount
	}

	d.ID = primitive.NewObjectID()
	d.ReceiptNumber = uuid.NewString()
	d.Message = htmlsanitize.Text(d.Message)
	d.Status = models.DonationPending
	if d.Currency == "" {
		d.Currency = "USD"
	}

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// GetByID loads a donation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Transition moves a donation through its lifecycle, pinning the
// expected current status so a donation cannot be completed or
// refunded twice.
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
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: donation is no longer %s", ErrInvalidTransition, from)
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	DonorID    *primitive.ObjectID
	CampaignID *primitive.ObjectID
	Status     string
}

// List returns donations matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter, page, limit int64) ([]models.Donation, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if page < 1 {
		page = 1
	}

	filter := bson.M{}
	if f.DonorID != nil {
		filter["donor_id"] = *f.DonorID
	}
	if f.CampaignID != nil {
		filter["campaign_id"] = *f.CampaignID
	}
	if f.Status != "" {
		filter["status"] = f.Status
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

	var donations []models.Donation
	if err := cur.All(ctx, &donations); err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// StatusTotal is one row of a by-status aggregation.
type StatusTotal struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
	Amount int64  `bson:"amount" json:"amount"`
}

// TotalsByStatus aggregates donation count and amount grouped by
// status, optionally scoped to one campaign.
func (s *Store) TotalsByStatus(ctx context.Context, campaignID *primitive.ObjectID) ([]StatusTotal, error) {
	match := bson.M{}
	if campaignID != nil {
		match["campaign_id"] = *campaignID
	}
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$amount"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var totals []StatusTotal
	if err := cur.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// CampaignSummary is the per-campaign report row.
type CampaignSummary struct {
	CampaignID primitive.ObjectID `bson:"_id" json:"campaign_id"`
	Count      int64              `bson:"count" json:"donation_count"`
	DonorCount int64              `bson:"donor_count" json:"donor_count"`
	Amount     int64              `bson:"amount" json:"amount"`
}

// SummarizeByCampaign aggregates completed donations per campaign for
// the given campaign ids (an NGO dashboard lists its own campaigns).
func (s *Store) SummarizeByCampaign(ctx context.Context, campaignIDs []primitive.ObjectID) ([]CampaignSummary, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"campaign_id": bson.M{"$in": campaignIDs},
			"status":      models.DonationCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$campaign_id",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$amount"},
			"donors": bson.M{"$addToSet": "$donor_id"},
		}}},
		{{Key: "$project", Value: bson.M{
			"count":       1,
			"amount":      1,
			"donor_count": bson.M{"$size": "$donors"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []CampaignSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
