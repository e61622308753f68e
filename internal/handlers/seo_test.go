package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seoFixture provisions the location and product an SEO record points at.
func seoFixture(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()
	router, _ := newTestRouter(t)
	country := createCountry(t, router, "United States", "US")
	location := createLocation(t, router, map[string]any{
		"name":    "USA Wide",
		"slug":    "usa",
		"country": country["id"].(string),
	})
	product := createProduct(t, router, "Widget", "widget")
	return router, location["id"].(string), product["id"].(string)
}

func TestCreateSEO(t *testing.T) {
	t.Run("requires the core fields", func(t *testing.T) {
		router, locationID, productID := seoFixture(t)

		for _, tc := range []struct {
			missing string
			want    string
		}{
			{"sku", "SKU is required"},
			{"slug", "Slug is required"},
			{"locationId", "Location is required"},
			{"productId", "Product is required"},
		} {
			body := map[string]any{
				"sku":        "W-100",
				"slug":       "widget-usa",
				"locationId": locationID,
				"productId":  productID,
			}
			delete(body, tc.missing)

			w := doJSON(t, router, http.MethodPost, "/api/seos", body)

			assert.Equal(t, http.StatusBadRequest, w.Code, tc.missing)
			assert.Equal(t, tc.want, decodeObject(t, w)["message"])
		}
	})

	t.Run("persists arbitrary extra fields", func(t *testing.T) {
		router, locationID, productID := seoFixture(t)

		w := doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
			"sku":         "W-100",
			"slug":        "widget-usa",
			"locationId":  locationID,
			"productId":   productID,
			"metaTitle":   "Widgets in the USA",
			"priority":    float64(3),
			"customMeta":  map[string]any{"og:type": "product"},
			"breadcrumbs": []any{"home", "widgets"},
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		doc := decodeObject(t, w)
		assert.NotEmpty(t, doc["id"])
		assert.Equal(t, "Widgets in the USA", doc["metaTitle"])
		assert.Equal(t, locationID, doc["locationId"])
		assert.Equal(t, productID, doc["productId"])

		w = doJSON(t, router, http.MethodGet, "/api/seos/"+doc["id"].(string), nil)
		require.Equal(t, http.StatusOK, w.Code)
		stored := decodeObject(t, w)
		assert.Equal(t, []any{"home", "widgets"}, stored["breadcrumbs"])
		assert.Equal(t, map[string]any{"og:type": "product"}, stored["customMeta"])
	})

	t.Run("rejects a non-object customMeta", func(t *testing.T) {
		router, locationID, productID := seoFixture(t)

		w := doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
			"sku":        "W-100",
			"slug":       "widget-usa",
			"locationId": locationID,
			"productId":  productID,
			"customMeta": "not-an-object",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "customMeta must be an object", decodeObject(t, w)["message"])
	})

	t.Run("unknown references", func(t *testing.T) {
		router, locationID, productID := seoFixture(t)

		w := doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
			"sku":        "W-100",
			"slug":       "widget-usa",
			"locationId": "64b0c0ffee0ddf00d1234567",
			"productId":  productID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Location not found", decodeObject(t, w)["message"])

		w = doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
			"sku":        "W-100",
			"slug":       "widget-usa",
			"locationId": locationID,
			"productId":  "64b0c0ffee0ddf00d1234567",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product not found", decodeObject(t, w)["message"])
	})

	t.Run("duplicate slug", func(t *testing.T) {
		router, locationID, productID := seoFixture(t)
		body := map[string]any{
			"sku":        "W-100",
			"slug":       "widget-usa",
			"locationId": locationID,
			"productId":  productID,
		}
		w := doJSON(t, router, http.MethodPost, "/api/seos", body)
		require.Equal(t, http.StatusCreated, w.Code)

		body["sku"] = "W-101"
		w = doJSON(t, router, http.MethodPost, "/api/seos", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Slug already exists", decodeObject(t, w)["message"])
	})
}

func TestUpdateSEO(t *testing.T) {
	create := func(t *testing.T) (*gin.Engine, string) {
		t.Helper()
		router, locationID, productID := seoFixture(t)
		w := doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
			"sku":        "W-100",
			"slug":       "widget-usa",
			"locationId": locationID,
			"productId":  productID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		return router, decodeObject(t, w)["id"].(string)
	}

	t.Run("partial update skips required-field checks", func(t *testing.T) {
		router, id := create(t)

		w := doJSON(t, router, http.MethodPut, "/api/seos/"+id, map[string]any{
			"metaTitle": "Updated title",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		doc := decodeObject(t, w)
		assert.Equal(t, "Updated title", doc["metaTitle"])
		assert.Equal(t, "W-100", doc["sku"])
		assert.Equal(t, "widget-usa", doc["slug"])
	})

	t.Run("customMeta shape is still checked", func(t *testing.T) {
		router, id := create(t)

		w := doJSON(t, router, http.MethodPut, "/api/seos/"+id, map[string]any{
			"customMeta": []any{"not", "an", "object"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "customMeta must be an object", decodeObject(t, w)["message"])
	})

	t.Run("slug change collides with another record", func(t *testing.T) {
		router, locationID, productID := seoFixture(t)
		for _, slug := range []string{"widget-usa", "widget-two"} {
			w := doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
				"sku":        "W-" + slug,
				"slug":       slug,
				"locationId": locationID,
				"productId":  productID,
			})
			require.Equal(t, http.StatusCreated, w.Code)
		}
		w := doJSON(t, router, http.MethodGet, "/api/seos", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decodeList(t, w)
		require.Len(t, list, 2)

		var target string
		for _, doc := range list {
			if doc["slug"] == "widget-two" {
				target = doc["id"].(string)
			}
		}
		require.NotEmpty(t, target)

		w = doJSON(t, router, http.MethodPut, "/api/seos/"+target, map[string]any{
			"slug": "widget-usa",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Slug already exists", decodeObject(t, w)["message"])
	})

	t.Run("unknown id", func(t *testing.T) {
		router, _, _ := seoFixture(t)

		w := doJSON(t, router, http.MethodPut, "/api/seos/64b0c0ffee0ddf00d1234567", map[string]any{
			"metaTitle": "x",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "SEO not found", decodeObject(t, w)["message"])
	})
}

func TestDeleteSEO(t *testing.T) {
	router, locationID, productID := seoFixture(t)
	w := doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
		"sku":        "W-100",
		"slug":       "widget-usa",
		"locationId": locationID,
		"productId":  productID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeObject(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/api/seos/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SEO deleted", decodeObject(t, w)["message"])

	// Hard delete: the record is gone and the slug is free again.
	w = doJSON(t, router, http.MethodGet, "/api/seos/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/seos", map[string]any{
		"sku":        "W-100",
		"slug":       "widget-usa",
		"locationId": locationID,
		"productId":  productID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCustomFieldEndpoints(t *testing.T) {
	t.Run("create text field", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "metaAuthor",
			"type": "text",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		field := decodeObject(t, w)
		assert.Equal(t, "metaAuthor", field["name"])
		assert.Equal(t, "text", field["type"])
	})

	t.Run("name and type are required", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "metaAuthor",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Name and type are required", decodeObject(t, w)["message"])
	})

	t.Run("unknown type", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "metaAuthor",
			"type": "checkbox",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid field type", decodeObject(t, w)["message"])
	})

	t.Run("dropdown needs a source", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "region",
			"type": "dropdown",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Dropdown source is required for dropdown fields", decodeObject(t, w)["message"])
	})

	t.Run("duplicate name", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "metaAuthor",
			"type": "text",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "metaAuthor",
			"type": "number",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Custom field name already exists", decodeObject(t, w)["message"])
	})

	t.Run("delete", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := doJSON(t, router, http.MethodPost, "/api/seo-custom-fields", map[string]any{
			"name": "metaAuthor",
			"type": "text",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		id := decodeObject(t, w)["id"].(string)

		w = doJSON(t, router, http.MethodDelete, "/api/seo-custom-fields/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Custom field deleted", decodeObject(t, w)["message"])

		w = doJSON(t, router, http.MethodGet, "/api/seo-custom-fields", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})
}
