package handlers

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/repository"
)

// Parent references are expanded to name/code projections, the way the
// admin UI consumes them. Lookups are memoized per request so list
// endpoints resolve each parent once.

type countryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type stateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type cityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h HandlerSet) countryRef(ctx context.Context, memo map[primitive.ObjectID]*countryRef, id primitive.ObjectID) (*countryRef, error) {
	if id.IsZero() {
		return nil, nil
	}
	if ref, ok := memo[id]; ok {
		return ref, nil
	}

	country, err := h.countries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			memo[id] = nil
			return nil, nil
		}
		return nil, err
	}

	ref := &countryRef{ID: country.ID.Hex(), Name: country.Name, Code: country.Code}
	memo[id] = ref
	return ref, nil
}

func (h HandlerSet) stateRef(ctx context.Context, memo map[primitive.ObjectID]*stateRef, id primitive.ObjectID) (*stateRef, error) {
	if id.IsZero() {
		return nil, nil
	}
	if ref, ok := memo[id]; ok {
		return ref, nil
	}

	state, err := h.states.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			memo[id] = nil
			return nil, nil
		}
		return nil, err
	}

	ref := &stateRef{ID: state.ID.Hex(), Name: state.Name, Code: state.Code}
	memo[id] = ref
	return ref, nil
}

func (h HandlerSet) cityRef(ctx context.Context, memo map[primitive.ObjectID]*cityRef, id primitive.ObjectID) (*cityRef, error) {
	if id.IsZero() {
		return nil, nil
	}
	if ref, ok := memo[id]; ok {
		return ref, nil
	}

	city, err := h.cities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			memo[id] = nil
			return nil, nil
		}
		return nil, err
	}

	ref := &cityRef{ID: city.ID.Hex(), Name: city.Name}
	memo[id] = ref
	return ref, nil
}
