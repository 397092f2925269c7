// internal/app/store/audit/auditstore.go

// Package audit persists security and admin audit events to the
// audit_events collection. Writes are best-effort: the caller
// (auditlog.Logger) reports persistence failures to zap and keeps the
// request going.
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories.
const (
	CategoryAuth     = "auth"
	CategoryAdmin    = "admin"
	CategoryDonation = "donation"
)

// Event types recorded by the platform.
const (
	EventLoginSuccess        = "login_success"
	EventLoginFailed         = "login_failed"
	EventAccessGranted       = "access_granted"
	EventAccessDeniedRole    = "access_denied_role"
	EventAccountDeactivated  = "account_deactivated"
	EventUserStatusChanged   = "user_status_changed"
	EventUserRoleChanged     = "user_role_changed"
	EventUserDeleted         = "user_deleted"
	EventNGOVerified         = "ngo_verified"
	EventCampaignTransition  = "campaign_status_changed"
	EventDonationTransition  = "donation_status_changed"
	EventRegistrationCreated = "registration_created"
)

// Event is one audit record.
type Event struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	Category      string              `bson:"category"`
	EventType     string              `bson:"event_type"`
	UserID        *primitive.ObjectID `bson:"user_id,omitempty"`
	ActorID       *primitive.ObjectID `bson:"actor_id,omitempty"`
	IP            string              `bson:"ip,omitempty"`
	UserAgent     string              `bson:"user_agent,omitempty"`
	Success       bool                `bson:"success"`
	FailureReason string              `bson:"failure_reason,omitempty"`
	Details       map[string]string   `bson:"details,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Log inserts one event, stamping CreatedAt if unset.
func (s *Store) Log(ctx context.Context, e Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// ListRecent returns up to limit events, newest first, optionally
// filtered by category. Used by the admin overview report.
func (s *Store) ListRecent(ctx context.Context, category string, limit int64) ([]Event, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
