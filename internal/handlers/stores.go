package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/models"
)

type CountryStore interface {
	ListActive(ctx context.Context) ([]models.Country, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Country, error)
	FindConflict(ctx context.Context, name, code string, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, country models.Country) (models.Country, error)
	Update(ctx context.Context, country models.Country) (models.Country, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type StateStore interface {
	ListActive(ctx context.Context) ([]models.State, error)
	ListActiveByCountry(ctx context.Context, countryID primitive.ObjectID) ([]models.State, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.State, error)
	FindConflict(ctx context.Context, name string, countryID, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, state models.State) (models.State, error)
	Update(ctx context.Context, state models.State) (models.State, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type CityStore interface {
	ListActive(ctx context.Context) ([]models.City, error)
	ListActiveByState(ctx context.Context, stateID primitive.ObjectID) ([]models.City, error)
	ListActiveByCountry(ctx context.Context, countryID primitive.ObjectID) ([]models.City, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.City, error)
	FindConflict(ctx context.Context, name string, stateID, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, city models.City) (models.City, error)
	Update(ctx context.Context, city models.City) (models.City, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type LocationStore interface {
	ListActive(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Location, error)
	SlugExists(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, location models.Location) (models.Location, error)
	Update(ctx context.Context, location models.Location) (models.Location, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type ProductStore interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindConflict(ctx context.Context, name, slug string, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, product models.Product) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type SEOStore interface {
	List(ctx context.Context) ([]models.SEODocument, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.SEODocument, error)
	SlugExists(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, doc models.SEODocument) (models.SEODocument, error)
	Update(ctx context.Context, id primitive.ObjectID, fields models.SEODocument) (models.SEODocument, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CustomFieldStore interface {
	List(ctx context.Context) ([]models.SEOCustomField, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, field models.SEOCustomField) (models.SEOCustomField, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type InquiryStore interface {
	ListNewestFirst(ctx context.Context) ([]models.Inquiry, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Inquiry, error)
	Insert(ctx context.Context, inquiry models.Inquiry) (models.Inquiry, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (models.Inquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
