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

var ErrInquiryNotFound = errors.New("inquiry not found")

type InquiryRepository struct {
	coll *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{coll: db.Collection("inquiries")}
}

func (r *InquiryRepository) ListNewestFirst(ctx context.Context) ([]models.Inquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var inquiries []models.Inquiry
	if err := cur.All(ctx, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *InquiryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Inquiry{}, ErrInquiryNotFound
		}
		return models.Inquiry{}, err
	}
	return inquiry, nil
}

func (r *InquiryRepository) Insert(ctx context.Context, inquiry models.Inquiry) (models.Inquiry, error) {
	now := time.Now().UTC()
	inquiry.ID = primitive.NewObjectID()
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, inquiry); err != nil {
		return models.Inquiry{}, err
	}
	return inquiry, nil
}

// UpdateFields $sets only the supplied keys, so a later funnel step never
// blanks the fields captured by earlier steps.
func (r *InquiryRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (models.Inquiry, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inquiry models.Inquiry
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&inquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Inquiry{}, ErrInquiryNotFound
		}
		return models.Inquiry{}, err
	}
	return inquiry, nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrInquiryNotFound
	}
	return nil
}
