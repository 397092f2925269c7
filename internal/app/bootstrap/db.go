// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the stores rely on. Index creation
// is idempotent; Mongo ignores requests that match an existing index.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	type spec struct {
		collection string
		models     []mongo.IndexModel
	}

	specs := []spec{
		{
			collection: "users",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "full_name_ci", Value: 1}}},
				{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
			},
		},
		{
			collection: "ngos",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "name_ci", Value: 1}}},
			},
		},
		{
			collection: "companies",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "name_ci", Value: 1}}},
			},
		},
		{
			collection: "campaigns",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "ngo_id", Value: 1}, {Key: "status", Value: 1}}},
				{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
				{Keys: bson.D{{Key: "title_ci", Value: 1}}},
			},
		},
		{
			collection: "donations",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "campaign_id", Value: 1}, {Key: "status", Value: 1}}},
				{Keys: bson.D{{Key: "donor_id", Value: 1}, {Key: "created_at", Value: -1}}},
				{Keys: bson.D{{Key: "receipt_number", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			collection: "audit_events",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
			},
		},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateMany(ctx, s.models); err != nil {
			logger.Error("index creation failed",
				zap.String("collection", s.collection), zap.Error(err))
			return err
		}
	}

	logger.Info("schema ensured", zap.Int("collections", len(specs)))
	return nil
}
