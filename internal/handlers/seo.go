package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

func (h HandlerSet) ListSEOs(c *gin.Context) {
	docs, err := h.seos.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, seoResponse(doc))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetSEO(c *gin.Context) {
	id, ok := parseID(c, "SEO not found")
	if !ok {
		return
	}

	doc, err := h.seos.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSEONotFound) {
			message(c, http.StatusNotFound, "SEO not found")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, seoResponse(doc))
}

func (h HandlerSet) CreateSEO(c *gin.Context) {
	var doc models.SEODocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		bindingErrors(c, err)
		return
	}

	if !customMetaIsObject(doc) {
		message(c, http.StatusBadRequest, "customMeta must be an object")
		return
	}

	for _, field := range []struct{ key, msg string }{
		{"sku", "SKU is required"},
		{"slug", "Slug is required"},
		{"locationId", "Location is required"},
		{"productId", "Product is required"},
	} {
		if stringField(doc, field.key) == "" {
			message(c, http.StatusBadRequest, field.msg)
			return
		}
	}

	ctx := c.Request.Context()

	locationID, err := primitive.ObjectIDFromHex(stringField(doc, "locationId"))
	if err != nil {
		message(c, http.StatusBadRequest, "Location not found")
		return
	}
	if _, err := h.locations.GetByID(ctx, locationID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			message(c, http.StatusBadRequest, "Location not found")
			return
		}
		h.serverError(c, err)
		return
	}

	productID, err := primitive.ObjectIDFromHex(stringField(doc, "productId"))
	if err != nil {
		message(c, http.StatusBadRequest, "Product not found")
		return
	}
	if _, err := h.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			message(c, http.StatusBadRequest, "Product not found")
			return
		}
		h.serverError(c, err)
		return
	}

	slug := stringField(doc, "slug")
	exists, err := h.seos.SlugExists(ctx, slug, primitive.NilObjectID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if exists {
		message(c, http.StatusBadRequest, "Slug already exists")
		return
	}

	doc["locationId"] = locationID
	doc["productId"] = productID

	doc, err = h.seos.Insert(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Slug already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, seoResponse(doc))
}

// UpdateSEO accepts any field set; only customMeta's shape and slug
// uniqueness are checked, so custom metadata keys flow through untouched.
func (h HandlerSet) UpdateSEO(c *gin.Context) {
	id, ok := parseID(c, "SEO not found")
	if !ok {
		return
	}

	var fields models.SEODocument
	if err := c.ShouldBindJSON(&fields); err != nil {
		bindingErrors(c, err)
		return
	}

	if !customMetaIsObject(fields) {
		message(c, http.StatusBadRequest, "customMeta must be an object")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.seos.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSEONotFound) {
			message(c, http.StatusNotFound, "SEO not found")
			return
		}
		h.serverError(c, err)
		return
	}

	if slug := stringField(fields, "slug"); slug != "" {
		exists, err := h.seos.SlugExists(ctx, slug, id)
		if err != nil {
			h.serverError(c, err)
			return
		}
		if exists {
			message(c, http.StatusBadRequest, "Slug already exists")
			return
		}
	}

	convertRefField(fields, "locationId")
	convertRefField(fields, "productId")

	doc, err := h.seos.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrSEONotFound) {
			message(c, http.StatusNotFound, "SEO not found")
			return
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Slug already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, seoResponse(doc))
}

func (h HandlerSet) DeleteSEO(c *gin.Context) {
	id, ok := parseID(c, "SEO not found")
	if !ok {
		return
	}

	if err := h.seos.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSEONotFound) {
			message(c, http.StatusNotFound, "SEO not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "SEO deleted")
}

func stringField(doc models.SEODocument, key string) string {
	s, _ := doc[key].(string)
	return s
}

func customMetaIsObject(doc models.SEODocument) bool {
	v, ok := doc["customMeta"]
	if !ok || v == nil {
		return true
	}
	_, isMap := v.(map[string]any)
	return isMap
}

// convertRefField upgrades a hex-string reference to an ObjectID so the
// stored document keeps real references; unparseable values pass through.
func convertRefField(doc models.SEODocument, key string) {
	raw, ok := doc[key].(string)
	if !ok {
		return
	}
	if id, err := primitive.ObjectIDFromHex(raw); err == nil {
		doc[key] = id
	}
}

// seoResponse maps a stored document to its JSON shape: _id becomes a hex
// id and BSON-specific types are flattened to JSON-friendly ones.
func seoResponse(doc models.SEODocument) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			out["id"] = normalizeBSON(v)
			continue
		}
		out[k] = normalizeBSON(v)
	}
	return out
}

func normalizeBSON(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeBSON(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeBSON(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeBSON(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeBSON(e)
		}
		return out
	default:
		return v
	}
}
