// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account on the platform: donors, company
// representatives, NGO operators, and admins.
//
// NOTE:
//   - PasswordHash must never be projected into reads that feed the
//     auth gate or any API response. Stores that load users for
//     request handling exclude it explicitly.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`     // donor | company | ngo | admin
	Status       string             `bson:"status" json:"status"` // active | disabled

	// Back-references to the org entity this account owns, if any.
	NGOID     *primitive.ObjectID `bson:"ngo_id,omitempty" json:"ngo_id,omitempty"`
	CompanyID *primitive.ObjectID `bson:"company_id,omitempty" json:"company_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
