package timeline

import (
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
// 📊 Timeline for an event - GET /events/:id/timeline
func (h *Handler) GetTimeline(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	entries, err := h.Service.LoadTimeline(c.Request.Context(), uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ===========================
// 📣 Post Announcement - POST /tonight/announcements
func (h *Handler) AddAnnouncement(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	var req AddAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	entries, err := h.Service.AddAnnouncement(c.Request.Context(), &req, staff.UserID, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add announcement: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entries)
}

// ===========================
// 🎧 Post DJ Set Time - POST /tonight/set-times
func (h *Handler) AddSetTime(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	var req AddSetTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	entries, err := h.Service.AddSetTime(c.Request.Context(), &req, staff.UserID, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add set time: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entries)
}

// ===========================
// 🛠 Update Entry - PUT /tonight/entries/:id
func (h *Handler) UpdateEntry(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	entries, err := h.Service.UpdateEntry(c.Request.Context(), uint(id), &req, staff.UserID, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update entry: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ===========================
// ❌ Delete Entry - DELETE /tonight/entries/:id
func (h *Handler) DeleteEntry(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	entries, err := h.Service.DeleteEntry(c.Request.Context(), uint(id), staff.UserID, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
