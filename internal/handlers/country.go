package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

type countryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCountryResponse(country models.Country) countryResponse {
	return countryResponse{
		ID:        country.ID.Hex(),
		Name:      country.Name,
		Code:      country.Code,
		IsActive:  country.IsActive,
		CreatedAt: country.CreatedAt,
		UpdatedAt: country.UpdatedAt,
	}
}

func (h HandlerSet) ListCountries(c *gin.Context) {
	countries, err := h.countries.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := make([]countryResponse, 0, len(countries))
	for _, country := range countries {
		resp = append(resp, newCountryResponse(country))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetCountry(c *gin.Context) {
	id, ok := parseID(c, "Country not found")
	if !ok {
		return
	}

	country, err := h.countries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			message(c, http.StatusNotFound, "Country not found")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCountryResponse(country))
}

type countryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (h HandlerSet) CreateCountry(c *gin.Context) {
	var req countryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	code := strings.ToUpper(req.Code)

	conflict, err := h.countries.FindConflict(ctx, req.Name, code, primitive.NilObjectID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "Country already exists")
		return
	}

	country, err := h.countries.Insert(ctx, models.Country{Name: req.Name, Code: code})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Country already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCountryResponse(country))
}

func (h HandlerSet) UpdateCountry(c *gin.Context) {
	id, ok := parseID(c, "Country not found")
	if !ok {
		return
	}

	var req countryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	country, err := h.countries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			message(c, http.StatusNotFound, "Country not found")
			return
		}
		h.serverError(c, err)
		return
	}

	code := strings.ToUpper(req.Code)
	conflict, err := h.countries.FindConflict(ctx, req.Name, code, id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "Country name or code already exists")
		return
	}

	country.Name = req.Name
	country.Code = code
	country, err = h.countries.Update(ctx, country)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Country name or code already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCountryResponse(country))
}

func (h HandlerSet) DeleteCountry(c *gin.Context) {
	id, ok := parseID(c, "Country not found")
	if !ok {
		return
	}

	if err := h.countries.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			message(c, http.StatusNotFound, "Country not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "Country deleted successfully")
}
