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

var ErrLocationNotFound = errors.New("location not found")

type LocationRepository struct {
	coll *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{coll: db.Collection("locations")}
}

func (r *LocationRepository) ListActive(ctx context.Context) ([]models.Location, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	var locations []models.Location
	if err := cur.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Location, error) {
	var location models.Location
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&location); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Location{}, ErrLocationNotFound
		}
		return models.Location{}, err
	}
	return location, nil
}

func (r *LocationRepository) SlugExists(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"isActive": true, "slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *LocationRepository) Insert(ctx context.Context, location models.Location) (models.Location, error) {
	now := time.Now().UTC()
	location.ID = primitive.NewObjectID()
	location.IsActive = true
	location.CreatedAt = now
	location.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, location); err != nil {
		return models.Location{}, translateWriteError(err)
	}
	return location, nil
}

// Update replaces the document: a parent reference cleared by the caller is
// dropped from the stored record, not left behind.
func (r *LocationRepository) Update(ctx context.Context, location models.Location) (models.Location, error) {
	location.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": location.ID}, location)
	if err != nil {
		return models.Location{}, translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return models.Location{}, ErrLocationNotFound
	}
	return location, nil
}

func (r *LocationRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLocationNotFound
	}
	return nil
}
