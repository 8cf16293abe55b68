package checkin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📋 Guest list - GET /events/:id/checkins
func (h *Handler) GetGuestList(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	guests, err := h.Service.ListGuests(c.Request.Context(), uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load guest list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(guests),
		"guests": guests,
	})
}
