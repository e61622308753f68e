package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

type locationResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Country   *countryRef `json:"country"`
	State     *stateRef   `json:"state"`
	City      *cityRef    `json:"city"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (h HandlerSet) locationResponses(ctx context.Context, locations []models.Location) ([]locationResponse, error) {
	countryMemo := make(map[primitive.ObjectID]*countryRef)
	stateMemo := make(map[primitive.ObjectID]*stateRef)
	cityMemo := make(map[primitive.ObjectID]*cityRef)

	resp := make([]locationResponse, 0, len(locations))
	for _, location := range locations {
		countryRef, err := h.countryRef(ctx, countryMemo, location.CountryID)
		if err != nil {
			return nil, err
		}
		stateRef, err := h.stateRef(ctx, stateMemo, location.StateID)
		if err != nil {
			return nil, err
		}
		cityRef, err := h.cityRef(ctx, cityMemo, location.CityID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, locationResponse{
			ID:        location.ID.Hex(),
			Name:      location.Name,
			Slug:      location.Slug,
			Country:   countryRef,
			State:     stateRef,
			City:      cityRef,
			IsActive:  location.IsActive,
			CreatedAt: location.CreatedAt,
			UpdatedAt: location.UpdatedAt,
		})
	}
	return resp, nil
}

func (h HandlerSet) ListLocations(c *gin.Context) {
	locations, err := h.locations.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp, err := h.locationResponses(c.Request.Context(), locations)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetLocation(c *gin.Context) {
	id, ok := parseID(c, "Location not found")
	if !ok {
		return
	}

	location, err := h.locations.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			message(c, http.StatusNotFound, "Location not found")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.locationResponses(c.Request.Context(), []models.Location{location})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

type locationRequest struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

// resolveLocationParents checks the optional parent references; at least one
// must be present.
func (h HandlerSet) resolveLocationParents(c *gin.Context, req locationRequest) (country, state, city primitive.ObjectID, ok bool) {
	if req.Country == "" && req.State == "" && req.City == "" {
		message(c, http.StatusBadRequest, "At least one of country, state, or city must be specified")
		return primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID, false
	}

	if req.Country != "" {
		if country, ok = h.resolveCountry(c, req.Country); !ok {
			return
		}
	}
	if req.State != "" {
		if state, ok = h.resolveState(c, req.State); !ok {
			return
		}
	}
	if req.City != "" {
		var err error
		city, err = primitive.ObjectIDFromHex(req.City)
		if err != nil {
			message(c, http.StatusBadRequest, "City not found")
			return primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID, false
		}
		if _, err := h.cities.GetByID(c.Request.Context(), city); err != nil {
			if errors.Is(err, repository.ErrCityNotFound) {
				message(c, http.StatusBadRequest, "City not found")
				return primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID, false
			}
			h.serverError(c, err)
			return primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID, false
		}
	}
	return country, state, city, true
}

func (h HandlerSet) CreateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := h.locations.SlugExists(ctx, req.Slug, primitive.NilObjectID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if exists {
		message(c, http.StatusBadRequest, "Slug already exists")
		return
	}

	countryID, stateID, cityID, ok := h.resolveLocationParents(c, req)
	if !ok {
		return
	}

	location, err := h.locations.Insert(ctx, models.Location{
		Name:      req.Name,
		Slug:      req.Slug,
		CountryID: countryID,
		StateID:   stateID,
		CityID:    cityID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Slug already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.locationResponses(ctx, []models.Location{location})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp[0])
}

func (h HandlerSet) UpdateLocation(c *gin.Context) {
	id, ok := parseID(c, "Location not found")
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	location, err := h.locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			message(c, http.StatusNotFound, "Location not found")
			return
		}
		h.serverError(c, err)
		return
	}

	exists, err := h.locations.SlugExists(ctx, req.Slug, id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if exists {
		message(c, http.StatusBadRequest, "Slug already exists")
		return
	}

	countryID, stateID, cityID, ok := h.resolveLocationParents(c, req)
	if !ok {
		return
	}

	location.Name = req.Name
	location.Slug = req.Slug
	location.CountryID = countryID
	location.StateID = stateID
	location.CityID = cityID
	location, err = h.locations.Update(ctx, location)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Slug already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.locationResponses(ctx, []models.Location{location})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

func (h HandlerSet) DeleteLocation(c *gin.Context) {
	id, ok := parseID(c, "Location not found")
	if !ok {
		return
	}

	if err := h.locations.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			message(c, http.StatusNotFound, "Location not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "Location deleted successfully")
}
