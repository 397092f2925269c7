// internal/domain/models/company.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a corporate donor account.
type Company struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	NameCI             string             `bson:"name_ci" json:"-"`
	RegistrationNumber string             `bson:"registration_number,omitempty" json:"registration_number,omitempty"`
	Website            string             `bson:"website,omitempty" json:"website,omitempty"`
	ContactEmail       string             `bson:"contact_email" json:"contact_email"`
	OwnerID            primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Status             string             `bson:"status" json:"status"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
