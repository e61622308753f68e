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

var ErrCountryNotFound = errors.New("country not found")

type CountryRepository struct {
	coll *mongo.Collection
}

func NewCountryRepository(db *mongo.Database) *CountryRepository {
	return &CountryRepository{coll: db.Collection("countries")}
}

func (r *CountryRepository) ListActive(ctx context.Context) ([]models.Country, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	var countries []models.Country
	if err := cur.All(ctx, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *CountryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Country, error) {
	var country models.Country
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&country); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Country{}, ErrCountryNotFound
		}
		return models.Country{}, err
	}
	return country, nil
}

// FindConflict reports whether another active country already uses the name
// or the code.
func (r *CountryRepository) FindConflict(ctx context.Context, name, code string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"isActive": true,
		"$or":      bson.A{bson.M{"name": name}, bson.M{"code": code}},
	}
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

func (r *CountryRepository) Insert(ctx context.Context, country models.Country) (models.Country, error) {
	now := time.Now().UTC()
	country.ID = primitive.NewObjectID()
	country.IsActive = true
	country.CreatedAt = now
	country.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, country); err != nil {
		return models.Country{}, translateWriteError(err)
	}
	return country, nil
}

func (r *CountryRepository) Update(ctx context.Context, country models.Country) (models.Country, error) {
	country.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": country.ID}, country)
	if err != nil {
		return models.Country{}, translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return models.Country{}, ErrCountryNotFound
	}
	return country, nil
}

func (r *CountryRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCountryNotFound
	}
	return nil
}
