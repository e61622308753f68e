package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SEODocument is deliberately schemaless: beyond the handful of required
// fields (sku, slug, locationId, productId) callers may persist arbitrary
// metadata keys, so the document is carried as a plain map end to end.
type SEODocument map[string]any

type CustomFieldType string

const (
	CustomFieldTypeText     CustomFieldType = "text"
	CustomFieldTypeNumber   CustomFieldType = "number"
	CustomFieldTypeDropdown CustomFieldType = "dropdown"
)

type SEOCustomField struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Type           CustomFieldType    `bson:"type"`
	DropdownSource string             `bson:"dropdownSource,omitempty"`
	DefaultValue   any                `bson:"defaultValue,omitempty"`
	IsRequired     bool               `bson:"isRequired"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}
