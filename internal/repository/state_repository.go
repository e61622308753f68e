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

var ErrStateNotFound = errors.New("state not found")

type StateRepository struct {
	coll *mongo.Collection
}

func NewStateRepository(db *mongo.Database) *StateRepository {
	return &StateRepository{coll: db.Collection("states")}
}

func (r *StateRepository) ListActive(ctx context.Context) ([]models.State, error) {
	return r.listActive(ctx, bson.M{"isActive": true})
}

func (r *StateRepository) ListActiveByCountry(ctx context.Context, countryID primitive.ObjectID) ([]models.State, error) {
	return r.listActive(ctx, bson.M{"isActive": true, "country": countryID})
}

func (r *StateRepository) listActive(ctx context.Context, filter bson.M) ([]models.State, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var states []models.State
	if err := cur.All(ctx, &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (r *StateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.State, error) {
	var state models.State
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&state); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.State{}, ErrStateNotFound
		}
		return models.State{}, err
	}
	return state, nil
}

// FindConflict reports whether another active state with the same name
// already exists in the country.
func (r *StateRepository) FindConflict(ctx context.Context, name string, countryID, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"isActive": true, "name": name, "country": countryID}
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

func (r *StateRepository) Insert(ctx context.Context, state models.State) (models.State, error) {
	now := time.Now().UTC()
	state.ID = primitive.NewObjectID()
	state.IsActive = true
	state.CreatedAt = now
	state.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, state); err != nil {
		return models.State{}, translateWriteError(err)
	}
	return state, nil
}

func (r *StateRepository) Update(ctx context.Context, state models.State) (models.State, error) {
	state.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": state.ID}, state)
	if err != nil {
		return models.State{}, translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return models.State{}, ErrStateNotFound
	}
	return state, nil
}

func (r *StateRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStateNotFound
	}
	return nil
}
