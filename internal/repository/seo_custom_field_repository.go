package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adminpanel/api/internal/models"
)

var ErrCustomFieldNotFound = errors.New("custom field not found")

type SEOCustomFieldRepository struct {
	coll *mongo.Collection
}

func NewSEOCustomFieldRepository(db *mongo.Database) *SEOCustomFieldRepository {
	return &SEOCustomFieldRepository{coll: db.Collection("seo_custom_fields")}
}

func (r *SEOCustomFieldRepository) List(ctx context.Context) ([]models.SEOCustomField, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var fields []models.SEOCustomField
	if err := cur.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *SEOCustomFieldRepository) NameExists(ctx context.Context, name string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SEOCustomFieldRepository) Insert(ctx context.Context, field models.SEOCustomField) (models.SEOCustomField, error) {
	now := time.Now().UTC()
	field.ID = primitive.NewObjectID()
	field.CreatedAt = now
	field.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, field); err != nil {
		return models.SEOCustomField{}, translateWriteError(err)
	}
	return field, nil
}

func (r *SEOCustomFieldRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCustomFieldNotFound
	}
	return nil
}
