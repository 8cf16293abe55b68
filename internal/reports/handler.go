package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 Guest List Export - GET /reports/events/:id/guest-list?format=pdf|excel
func (h *Handler) GuestListReport(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	format := c.DefaultQuery("format", "pdf")
	if format != "pdf" && format != "excel" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be pdf or excel"})
		return
	}

	data, filename, contentType, err := h.Service.GuestListReport(c.Request.Context(), uint(eventID), format)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// ===========================
// 📊 Users Export - GET /reports/users
func (h *Handler) UsersReport(c *gin.Context) {
	data, filename, contentType, err := h.Service.UsersReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
