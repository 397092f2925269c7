// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation statuses:
//
//	pending   -> completed | failed
//	completed -> refunded
//
// Completing a donation adds its amount to the campaign's raised
// total; refunding subtracts it again.
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
	DonationRefunded  = "refunded"
)

// Donation is a single gift from a donor or company to a campaign.
type Donation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampaignID primitive.ObjectID `bson:"campaign_id" json:"campaign_id"`
	DonorID    primitive.ObjectID `bson:"donor_id" json:"donor_id"`
	DonorRole  string             `bson:"donor_role" json:"donor_role"` // donor | company

	Amount   int64  `bson:"amount" json:"amount"` // minor units
	Currency string `bson:"currency" json:"currency"`

	// ReceiptNumber is the external identifier printed on receipts.
	ReceiptNumber string `bson:"receipt_number" json:"receipt_number"`
	Message       string `bson:"message,omitempty" json:"message,omitempty"`
	Status        string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
