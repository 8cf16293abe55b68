package notification

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
// 📲 Broadcast Push - POST /notifications/push
func (h *Handler) SendPush(c *gin.Context) {
	staff, ok := middleware.GetStaffFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff context missing"})
		return
	}

	var req PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	entry, err := h.Service.BroadcastPush(c.Request.Context(), &req, &staff.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNoRecipients) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no registered push tokens"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "push delivery failed", "log": entry})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ===========================
// 🗒 Push History - GET /notifications
func (h *Handler) ListLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.Service.ListLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
