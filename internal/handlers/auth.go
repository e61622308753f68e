package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
	"adminpanel/api/internal/service"
)

type sessionUser struct {
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	LastLogin  time.Time `json:"lastLogin"`
}

func newSessionUser(user models.User) sessionUser {
	return sessionUser{
		Email:      user.Email,
		IsVerified: user.IsVerified,
		LastLogin:  user.LastLogin,
	}
}

type requestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	if err := h.auth.RequestOTP(c.Request.Context(), req.Email); err != nil {
		h.authError(c, err)
		return
	}

	message(c, http.StatusOK, "OTP sent successfully")
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=4"`
}

func (h HandlerSet) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrors(c, err)
		return
	}

	user, err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    newSessionUser(user),
	})
}

func (h HandlerSet) CheckSession(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		message(c, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.auth.CheckSession(c.Request.Context(), email)
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  newSessionUser(user),
	})
}

type extendSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) ExtendSession(c *gin.Context) {
	var req extendSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.auth.ExtendSession(c.Request.Context(), req.Email)
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session extended successfully",
		"user":    newSessionUser(user),
	})
}

type logoutRequest struct {
	Email string `json:"email"`
}

// Logout succeeds unconditionally: a missing or unknown email just means
// there is no session to close.
func (h HandlerSet) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		message(c, http.StatusOK, "Logout successful")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.Email); err != nil {
		h.authError(c, err)
		return
	}

	message(c, http.StatusOK, "Logout successful")
}

func (h HandlerSet) authError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailNotAllowed):
		message(c, http.StatusForbidden, "Email not authorized for admin access")
	case errors.Is(err, repository.ErrUserNotFound):
		message(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrOTPExpired):
		message(c, http.StatusBadRequest, "OTP expired or invalid")
	case errors.Is(err, service.ErrOTPMismatch):
		message(c, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, service.ErrSessionExpired):
		message(c, http.StatusUnauthorized, "Session expired")
	case errors.Is(err, service.ErrDeliveryFailed):
		message(c, http.StatusInternalServerError, "Failed to send OTP email")
	default:
		h.serverError(c, err)
	}
}
