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

var ErrCityNotFound = errors.New("city not found")

type CityRepository struct {
	coll *mongo.Collection
}

func NewCityRepository(db *mongo.Database) *CityRepository {
	return &CityRepository{coll: db.Collection("cities")}
}

func (r *CityRepository) ListActive(ctx context.Context) ([]models.City, error) {
	return r.listActive(ctx, bson.M{"isActive": true})
}

func (r *CityRepository) ListActiveByState(ctx context.Context, stateID primitive.ObjectID) ([]models.City, error) {
	return r.listActive(ctx, bson.M{"isActive": true, "state": stateID})
}

func (r *CityRepository) ListActiveByCountry(ctx context.Context, countryID primitive.ObjectID) ([]models.City, error) {
	return r.listActive(ctx, bson.M{"isActive": true, "country": countryID})
}

func (r *CityRepository) listActive(ctx context.Context, filter bson.M) ([]models.City, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var cities []models.City
	if err := cur.All(ctx, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *CityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.City, error) {
	var city models.City
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&city); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.City{}, ErrCityNotFound
		}
		return models.City{}, err
	}
	return city, nil
}

// FindConflict reports whether another active city with the same name
// already exists in the state.
func (r *CityRepository) FindConflict(ctx context.Context, name string, stateID, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"isActive": true, "name": name, "state": stateID}
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

func (r *CityRepository) Insert(ctx context.Context, city models.City) (models.City, error) {
	now := time.Now().UTC()
	city.ID = primitive.NewObjectID()
	city.IsActive = true
	city.CreatedAt = now
	city.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, city); err != nil {
		return models.City{}, translateWriteError(err)
	}
	return city, nil
}

func (r *CityRepository) Update(ctx context.Context, city models.City) (models.City, error) {
	city.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": city.ID}, city)
	if err != nil {
		return models.City{}, translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return models.City{}, ErrCityNotFound
	}
	return city, nil
}

func (r *CityRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCityNotFound
	}
	return nil
}
