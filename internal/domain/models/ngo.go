// internal/domain/models/ngo.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NGO is a registered charity that runs campaigns.
type NGO struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	NameCI             string             `bson:"name_ci" json:"-"`
	RegistrationNumber string             `bson:"registration_number" json:"registration_number"`
	Mission            string             `bson:"mission,omitempty" json:"mission,omitempty"`
	Website            string             `bson:"website,omitempty" json:"website,omitempty"`
	ContactEmail       string             `bson:"contact_email" json:"contact_email"`
	OwnerID            primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	// Verified is set by an admin after reviewing the registration.
	// Only verified NGOs can have their campaigns activated.
	Verified bool   `bson:"verified" json:"verified"`
	Status   string `bson:"status" json:"status"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
