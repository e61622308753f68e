package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the conflict checks rely on.
// Indexes on soft-deletable collections are partial over isActive so that a
// soft-deleted record can be recreated under the same key.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	activeOnly := bson.M{"isActive": true}

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"countries": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
		},
		"states": {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "country", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
		},
		"cities": {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "state", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
		},
		"locations": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
		},
		"products": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeOnly)},
		},
		"seos": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"seo_custom_fields": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
