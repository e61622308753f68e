package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductResponse(product models.Product) productResponse {
	return productResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Description: product.Description,
		Slug:        product.Slug,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func (h HandlerSet) ListProducts(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, newProductResponse(product))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "Product not found")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			message(c, http.StatusNotFound, "Product not found")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProductResponse(product))
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"required"`
}

func (h HandlerSet) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	conflict, err := h.products.FindConflict(ctx, req.Name, req.Slug, primitive.NilObjectID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "Product name or slug already exists")
		return
	}

	product, err := h.products.Insert(ctx, models.Product{
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Product name or slug already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newProductResponse(product))
}

func (h HandlerSet) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "Product not found")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()
	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			message(c, http.StatusNotFound, "Product not found")
			return
		}
		h.serverError(c, err)
		return
	}

	conflict, err := h.products.FindConflict(ctx, req.Name, req.Slug, id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if conflict {
		message(c, http.StatusBadRequest, "Product name or slug already exists")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Slug = req.Slug
	product, err = h.products.Update(ctx, product)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			message(c, http.StatusBadRequest, "Product name or slug already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProductResponse(product))
}

func (h HandlerSet) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "Product not found")
	if !ok {
		return
	}

	if err := h.products.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			message(c, http.StatusNotFound, "Product not found")
			return
		}
		h.serverError(c, err)
		return
	}

	message(c, http.StatusOK, "Product deleted successfully")
}
