package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

type stateResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Code      string      `json:"code"`
	Country   *countryRef `json:"country"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (h HandlerSet) stateResponses(ctx context.Context, states []models.State) ([]stateResponse, error) {
	memo := make(map[primitive.ObjectID]*countryRef)
	resp := make([]stateResponse, 0, len(states))
	for _, state := range states {
		ref, err := h.countryRef(ctx, memo, state.CountryID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, stateResponse{
			ID:        state.ID.Hex(),
			Name:      state.Name,
			Code:      state.Code,
			Country:   ref,
			IsActive:  state.IsActive,
			CreatedAt: state.CreatedAt,
			UpdatedAt: state.UpdatedAt,
		})
	}
	return resp, nil
}

func (h HandlerSet) ListStates(c *gin.Context) {
	states, err := h.states.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp, err := h.stateResponses(c.Request.Context(), states)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) ListStatesByCountry(c *gin.Context) {
	countryID, err := primitive.ObjectIDFromHex(c.Param("countryId"))
	if err != nil {
		c.JSON(http.StatusOK, []stateResponse{})
		return
	}

	states, err := h.states.ListActiveByCountry(c.Request.Context(), countryID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp, err := h.stateResponses(c.Request.Context(), states)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetState(c *gin.Context) {
	id, ok := parseID(c, "State not found")
	if !ok {
		return
	}

	state, err := h.states.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			message(c, http.StatusNotFound, "State not found")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.stateResponses(c.Request.Context(), []models.State{state})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

type stateRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// resolveCountry validates the parent reference, answering a 400 with the
// original's message when it does not resolve.
func (h HandlerSet) resolveCountry(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		message(c, http.StatusBadRequest, "Country not found")
		return primitive.NilObjectID, false
	}
	if _, err := h.countries.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			message(c, http.StatusBadRequest, "Country not found")
			return primitive.NilObjectID, false
		}
		h.serverError(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h HandlerSet) CreateState(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	countryID, ok := h.resolveCountry(c, req.Country)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	conflict, err := h.states.FindConflict(ctx, req.Name, countryID, primitive.NilObjectID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "State already exists in this country")
		return
	}

	state, err := h.states.Insert(ctx, models.State{
		Name:      req.Name,
		Code:      strings.ToUpper(req.Code),
		CountryID: countryID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "State already exists in this country")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.stateResponses(ctx, []models.State{state})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp[0])
}

func (h HandlerSet) UpdateState(c *gin.Context) {
	id, ok := parseID(c, "State not found")
	if !ok {
		return
	}

	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	state, err := h.states.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			message(c, http.StatusNotFound, "State not found")
			return
		}
		h.serverError(c, err)
		return
	}

	countryID, ok := h.resolveCountry(c, req.Country)
	if !ok {
		return
	}

	conflict, err := h.states.FindConflict(ctx, req.Name, countryID, id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "State name already exists in this country")
		return
	}

	state.Name = req.Name
	state.Code = strings.ToUpper(req.Code)
	state.CountryID = countryID
	state, err = h.states.Update(ctx, state)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "State name already exists in this country")
			return
		}
		h.serverError(c, err)
		return
	}

	resp, err := h.stateResponses(ctx, []models.State{state})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

func (h HandlerSet) DeleteState(c *gin.Context) {
	id, ok := parseID(c, "State not found")
	if !ok {
		return
	}

	if err := h.states.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			message(c, http.StatusNotFound, "State not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "State deleted successfully")
}
