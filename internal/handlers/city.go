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

type cityResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	State     *stateRef   `json:"state"`
	Country   *countryRef `json:"country"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (h HandlerSet) cityResponses(ctx context.Context, cities []models.City) ([]cityResponse, error) {
	stateMemo := make(map[primitive.ObjectID]*stateRef)
	countryMemo := make(map[primitive.ObjectID]*countryRef)

	resp := make([]cityResponse, 0, len(cities))
	for _, city := range cities {
		sRef, err := h.stateRef(ctx, stateMemo, city.StateID)
		if err != nil {
			return nil, err
		}
		cRef, err := h.countryRef(ctx, countryMemo, city.CountryID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, cityResponse{
			ID:        city.ID.Hex(),
			Name:      city.Name,
			State:     sRef,
			Country:   cRef,
			IsActive:  city.IsActive,
			CreatedAt: city.CreatedAt,
			UpdatedAt: city.UpdatedAt,
		})
	}
	return resp, nil
}

func (h HandlerSet) ListCities(c *gin.Context) {
	cities, err := h.cities.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp, err := h.cityResponses(c.Request.Context(), cities)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) ListCitiesByState(c *gin.Context) {
	stateID, err := primitive.ObjectIDFromHex(c.Param("stateId"))
	if err != nil {
		c.JSON(http.StatusOK, []cityResponse{})
		return
	}

	cities, err := h.cities.ListActiveByState(c.Request.Context(), stateID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp, err := h.cityResponses(c.Request.Context(), cities)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) ListCitiesByCountry(c *gin.Context) {
	countryID, err := primitive.ObjectIDFromHex(c.Param("countryId"))
	if err != nil {
		c.JSON(http.StatusOK, []cityResponse{})
		return
	}

	cities, err := h.cities.ListActiveByCountry(c.Request.Context(), countryID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp, err := h.cityResponses(c.Request.Context(), cities)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetCity(c *gin.Context) {
	id, ok := parseID(c, "City not found")
	if !ok {
		return
	}

	city, err := h.cities.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			message(c, http.StatusNotFound, "City not found")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.cityResponses(c.Request.Context(), []models.City{city})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

type cityRequest struct {
	Name    string `json:"name" binding:"required"`
	State   string `json:"state" binding:"required"`
	Country string `json:"country" binding:"required"`
}

func (h HandlerSet) resolveState(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		message(c, http.StatusBadRequest, "State not found")
		return primitive.NilObjectID, false
	}
	if _, err := h.states.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			message(c, http.StatusBadRequest, "State not found")
			return primitive.NilObjectID, false
		}
		h.serverError(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h HandlerSet) CreateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	stateID, ok := h.resolveState(c, req.State)
	if !ok {
		return
	}
	countryID, ok := h.resolveCountry(c, req.Country)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	conflict, err := h.cities.FindConflict(ctx, req.Name, stateID, primitive.NilObjectID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "City already exists in this state")
		return
	}

	city, err := h.cities.Insert(ctx, models.City{
		Name:      req.Name,
		StateID:   stateID,
		CountryID: countryID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "City already exists in this state")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.cityResponses(ctx, []models.City{city})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp[0])
}

func (h HandlerSet) UpdateCity(c *gin.Context) {
	id, ok := parseID(c, "City not found")
	if !ok {
		return
	}

	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	city, err := h.cities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			message(c, http.StatusNotFound, "City not found")
			return
		}
		h.serverError(c, err)
		return
	}

	stateID, ok := h.resolveState(c, req.State)
	if !ok {
		return
	}
	countryID, ok := h.resolveCountry(c, req.Country)
	if !ok {
		return
	}

	conflict, err := h.cities.FindConflict(ctx, req.Name, stateID, id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "City name already exists in this state")
		return
	}

	city.Name = req.Name
	city.StateID = stateID
	city.CountryID = countryID
	city, err = h.cities.Update(ctx, city)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "City name already exists in this state")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.cityResponses(ctx, []models.City{city})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

func (h HandlerSet) DeleteCity(c *gin.Context) {
	id, ok := parseID(c, "City not found")
	if !ok {
		return
	}

	if err := h.cities.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			message(c, http.StatusNotFound, "City not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "City deleted successfully")
}
