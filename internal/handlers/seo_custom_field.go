package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

type customFieldResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	DropdownSource string    `json:"dropdownSource,omitempty"`
	DefaultValue   any       `json:"defaultValue,omitempty"`
	IsRequired     bool      `json:"isRequired"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newCustomFieldResponse(field models.SEOCustomField) customFieldResponse {
	return customFieldResponse{
		ID:             field.ID.Hex(),
		Name:           field.Name,
		Type:           string(field.Type),
		DropdownSource: field.DropdownSource,
		DefaultValue:   field.DefaultValue,
		IsRequired:     field.IsRequired,
		CreatedAt:      field.CreatedAt,
		UpdatedAt:      field.UpdatedAt,
	}
}

func (h HandlerSet) ListCustomFields(c *gin.Context) {
	fields, err := h.customFields.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := make([]customFieldResponse, 0, len(fields))
	for _, field := range fields {
		resp = append(resp, newCustomFieldResponse(field))
	}
	c.JSON(http.StatusOK, resp)
}

type customFieldRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	DropdownSource string `json:"dropdownSource"`
	DefaultValue   any    `json:"defaultValue"`
	IsRequired     bool   `json:"isRequired"`
}

func (h HandlerSet) CreateCustomField(c *gin.Context) {
	var req customFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	if req.Name == "" || req.Type == "" {
		message(c, http.StatusBadRequest, "Name and type are required")
		return
	}

	fieldType := models.CustomFieldType(req.Type)
	switch fieldType {
	case models.CustomFieldTypeText, models.CustomFieldTypeNumber, models.CustomFieldTypeDropdown:
	default:
		message(c, http.StatusBadRequest, "Invalid field type")
		return
	}

	dropdownSource := ""
	if fieldType == models.CustomFieldTypeDropdown {
		if req.DropdownSource == "" {
			message(c, http.StatusBadRequest, "Dropdown source is required for dropdown fields")
			return
		}
		dropdownSource = req.DropdownSource
	}

	ctx := c.Request.Context()
	exists, err := h.customFields.NameExists(ctx, req.Name)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if exists {
		message(c, http.StatusBadRequest, "Custom field name already exists")
		return
	}

	field, err := h.customFields.Insert(ctx, models.SEOCustomField{
		Name:           req.Name,
		Type:           fieldType,
		DropdownSource: dropdownSource,
		DefaultValue:   req.DefaultValue,
		IsRequired:     req.IsRequired,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Custom field name already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCustomFieldResponse(field))
}

func (h HandlerSet) DeleteCustomField(c *gin.Context) {
	id, ok := parseID(c, "Custom field not found")
	if !ok {
		return
	}

	if err := h.customFields.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCustomFieldNotFound) {
			message(c, http.StatusNotFound, "Custom field not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "Custom field deleted")
}
