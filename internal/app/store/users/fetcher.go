// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/authz"
	"github.com/kindbridge/kindbridge/internal/app/system/normalize"
	"github.com/kindbridge/kindbridge/internal/app/system/status"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.PrincipalFetcher: it resolves a token subject
// to fresh account state on every request. No caching layer sits in
// front of it, so a role change or deactivation takes effect on the
// account's very next request.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a PrincipalFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchPrincipal retrieves the account by id, projecting out the
// credential hash before the record leaves the store. It distinguishes
// a missing account (auth.ErrNotFound, 401 on the wire) from a
// disabled one (auth.ErrInactive, 403), and reports a malformed id as
// not-found rather than an internal error.
func (f *Fetcher) FetchPrincipal(ctx context.Context, userID string) (*auth.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, auth.ErrNotFound
	}

	// Bounded lookup: a slow backend denies, it never stalls the pipeline.
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"email":     1,
		"role":      1,
		"status":    1,
	})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}

	if normalize.Status(u.Status) != status.Active {
		return nil, auth.ErrInactive
	}

	role, ok := authz.Parse(u.Role)
	if !ok {
		// Unknown role in a stored account. Fail closed.
		return nil, auth.ErrNotFound
	}

	return &auth.Principal{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  role,
	}, nil
}
