package livesync

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Manager: m}
}

// ===========================
// 🌙 Tonight view - GET /tonight
func (h *Handler) GetTonight(c *gin.Context) {
	snap := h.Manager.Snapshot()
	if snap.Event == nil {
		c.JSON(http.StatusOK, gin.H{
			"event":      nil,
			"message":    "no event is live right now",
			"updated_at": snap.UpdatedAt,
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ===========================
// 📌 Pin event - POST /tonight/select
func (h *Handler) SelectEvent(c *gin.Context) {
	var req struct {
		EventID uint `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Manager.Select(c.Request.Context(), req.EventID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select event"})
		return
	}
	c.JSON(http.StatusOK, h.Manager.Snapshot())
}

// ===========================
// 🔓 Unpin event - DELETE /tonight/select
func (h *Handler) ClearSelection(c *gin.Context) {
	h.Manager.ClearSelection(c.Request.Context())
	c.JSON(http.StatusOK, h.Manager.Snapshot())
}

// ===========================
// 📡 Live stream - GET /tonight/stream
//
// Server-sent events. Each message is a full snapshot, so a client that
// drops a frame just renders the next one.
func (h *Handler) Stream(c *gin.Context) {
	ch := h.Manager.Hub.Register()
	defer h.Manager.Hub.Unregister(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Send the current state immediately so the client is not blank until
	// the next change.
	snap := h.Manager.Snapshot()
	c.SSEvent("snapshot", snap)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
