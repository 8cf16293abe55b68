package allowlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nmoralesv/event-night-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📧 List Approved Emails - GET /approved-emails
func (h *Handler) ListEmails(c *gin.Context) {
	emails, err := h.Service.ListEmails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list approved emails"})
		return
	}
	c.JSON(http.StatusOK, emails)
}

// ===========================
// ➕ Approve Email - POST /approved-emails
func (h *Handler) AddEmail(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	var req AddEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	entry, err := h.Service.AddEmail(c.Request.Context(), &req, staff.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		case errors.Is(err, ErrAlreadyApproved):
			c.JSON(http.StatusConflict, gin.H{"error": "email is already approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve email"})
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ===========================
// ✏️ Update Approved Email - PUT /approved-emails/:id
func (h *Handler) UpdateEmail(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email ID"})
		return
	}

	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	entry, err := h.Service.UpdateEmail(c.Request.Context(), uint(id), &req, staff.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		case errors.Is(err, ErrEmailNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "approved email not found"})
		case errors.Is(err, ErrAlreadyApproved):
			c.JSON(http.StatusConflict, gin.H{"error": "email is already approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update email"})
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ===========================
// ❌ Remove Approved Email - DELETE /approved-emails/:id
func (h *Handler) RemoveEmail(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email ID"})
		return
	}

	if err := h.Service.RemoveEmail(c.Request.Context(), uint(id), staff.UserID, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "approved email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email removed from allowlist"})
}
