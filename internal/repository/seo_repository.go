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

var ErrSEONotFound = errors.New("seo not found")

// SEORepository stores schemaless documents: whatever keys the caller sends
// are persisted verbatim alongside the required ones.
type SEORepository struct {
	coll *mongo.Collection
}

func NewSEORepository(db *mongo.Database) *SEORepository {
	return &SEORepository{coll: db.Collection("seos")}
}

func (r *SEORepository) List(ctx context.Context) ([]models.SEODocument, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []models.SEODocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *SEORepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.SEODocument, error) {
	var doc models.SEODocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSEONotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *SEORepository) SlugExists(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
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

func (r *SEORepository) Insert(ctx context.Context, doc models.SEODocument) (models.SEODocument, error) {
	now := time.Now().UTC()
	doc["_id"] = primitive.NewObjectID()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translateWriteError(err)
	}
	return doc, nil
}

// Update $sets exactly the supplied fields; identity and creation time are
// never overwritten.
func (r *SEORepository) Update(ctx context.Context, id primitive.ObjectID, fields models.SEODocument) (models.SEODocument, error) {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" || k == "id" || k == "createdAt" {
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc models.SEODocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSEONotFound
		}
		return nil, translateWriteError(err)
	}
	return doc, nil
}

func (r *SEORepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSEONotFound
	}
	return nil
}
