// internal/domain/models/campaign.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses. A campaign starts pending and moves through the
// lifecycle via admin review and donation totals:
//
//	pending   -> active | rejected
//	active    -> suspended | completed
//	suspended -> active
const (
	CampaignPending   = "pending"
	CampaignActive    = "active"
	CampaignCompleted = "completed"
	CampaignRejected  = "rejected"
	CampaignSuspended = "suspended"
)

// Campaign is a fundraising drive owned by an NGO.
//
// Monetary amounts are stored in minor units (cents) to avoid
// floating-point drift in aggregations.
type Campaign struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NGOID       primitive.ObjectID `bson:"ngo_id" json:"ngo_id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`

	GoalAmount   int64  `bson:"goal_amount" json:"goal_amount"`
	RaisedAmount int64  `bson:"raised_amount" json:"raised_amount"`
	Currency     string `bson:"currency" json:"currency"`

	Status   string     `bson:"status" json:"status"`
	StartsAt *time.Time `bson:"starts_at,omitempty" json:"starts_at,omitempty"`
	EndsAt   *time.Time `bson:"ends_at,omitempty" json:"ends_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
