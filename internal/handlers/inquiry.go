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

type inquiryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Step      int       `json:"step"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newInquiryResponse(inquiry models.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:        inquiry.ID.Hex(),
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		Message:   inquiry.Message,
		Step:      inquiry.Step,
		CreatedAt: inquiry.CreatedAt,
		UpdatedAt: inquiry.UpdatedAt,
	}
}

func (h HandlerSet) ListInquiries(c *gin.Context) {
	inquiries, err := h.inquiries.ListNewestFirst(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := make([]inquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		resp = append(resp, newInquiryResponse(inquiry))
	}
	c.JSON(http.StatusOK, resp)
}

type upsertInquiryRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
	Step    *int    `json:"step"`
}

// UpsertInquiry advances the lead-capture funnel: without an id it opens a
// new inquiry, with one it records the current step's answers on it. Only
// keys present in the body are written, so a later step never blanks the
// answers captured by earlier steps.
func (h HandlerSet) UpsertInquiry(c *gin.Context) {
	var req upsertInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	ctx := c.Request.Context()

	if req.ID != "" {
		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			message(c, http.StatusNotFound, "Inquiry not found")
			return
		}
		fields := make(map[string]any)
		if req.Name != nil {
			fields["name"] = *req.Name
		}
		if req.Email != nil {
			fields["email"] = *req.Email
		}
		if req.Phone != nil {
			fields["phone"] = *req.Phone
		}
		if req.Message != nil {
			fields["message"] = *req.Message
		}
		if req.Step != nil {
			fields["step"] = *req.Step
		}
		inquiry, err := h.inquiries.UpdateFields(ctx, id, fields)
		if err != nil {
			if errors.Is(err, repository.ErrInquiryNotFound) {
				message(c, http.StatusNotFound, "Inquiry not found")
				return
			}
			h.serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, newInquiryResponse(inquiry))
		return
	}

	if req.Name == nil || *req.Name == "" {
		message(c, http.StatusBadRequest, "Name is required")
		return
	}

	inquiry := models.Inquiry{Name: *req.Name}
	if req.Email != nil {
		inquiry.Email = *req.Email
	}
	if req.Phone != nil {
		inquiry.Phone = *req.Phone
	}
	if req.Message != nil {
		inquiry.Message = *req.Message
	}
	if req.Step != nil {
		inquiry.Step = *req.Step
	}

	inquiry, err := h.inquiries.Insert(ctx, inquiry)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newInquiryResponse(inquiry))
}

type updateInquiryRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
	Step    *int    `json:"step"`
}

func (h HandlerSet) UpdateInquiry(c *gin.Context) {
	id, ok := parseID(c, "Inquiry not found")
	if !ok {
		return
	}

	var req updateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	fields := make(map[string]any)
	if req.Name != nil {
		if *req.Name == "" {
			message(c, http.StatusBadRequest, "Name is required")
			return
		}
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Message != nil {
		fields["message"] = *req.Message
	}
	if req.Step != nil {
		fields["step"] = *req.Step
	}

	inquiry, err := h.inquiries.UpdateFields(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			message(c, http.StatusNotFound, "Inquiry not found")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, newInquiryResponse(inquiry))
}

func (h HandlerSet) DeleteInquiry(c *gin.Context) {
	id, ok := parseID(c, "Inquiry not found")
	if !ok {
		return
	}

	if err := h.inquiries.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			message(c, http.StatusNotFound, "Inquiry not found")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
