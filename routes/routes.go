package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nmoralesv/event-night-backend/docs"

	"github.com/nmoralesv/event-night-backend/config"
	"github.com/nmoralesv/event-night-backend/database"
	"github.com/nmoralesv/event-night-backend/internal/allowlist"
	"github.com/nmoralesv/event-night-backend/internal/auditlog"
	"github.com/nmoralesv/event-night-backend/internal/changefeed"
	"github.com/nmoralesv/event-night-backend/internal/checkin"
	"github.com/nmoralesv/event-night-backend/internal/event"
	"github.com/nmoralesv/event-night-backend/internal/livesync"
	"github.com/nmoralesv/event-night-backend/internal/notification"
	"github.com/nmoralesv/event-night-backend/internal/reports"
	"github.com/nmoralesv/event-night-backend/internal/timeline"
	"github.com/nmoralesv/event-night-backend/internal/user"
	"github.com/nmoralesv/event-night-backend/middleware"
)

// App exposes the long-lived pieces main needs after route setup: the live
// sync manager (Start/Close) and the notification service (Kafka consumer).
type App struct {
	LiveSync      *livesync.Manager
	Notifications *notification.Service
	AuditSvc      auditlog.Service
}

func Setup(r *gin.Engine, cfg *config.Config, feed changefeed.Feed) *App {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, feed, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Timeline ==========
	timelineRepo := timeline.NewRepository(database.DB)
	timelineSvc := timeline.NewService(timelineRepo, timelineRepo, feed, auditSvc)
	timelineHandler := timeline.NewHandler(timelineSvc)

	// ========== Check-ins ==========
	checkinRepo := checkin.NewRepository(database.DB)
	checkinSvc := checkin.NewService(checkinRepo)
	checkinHandler := checkin.NewHandler(checkinSvc)

	// ========== Live Sync ==========
	hub := livesync.NewHub()
	manager := livesync.NewManager(eventSvc, timelineSvc, checkinSvc, feed, hub)
	livesyncHandler := livesync.NewHandler(manager)

	// ========== Allowlist ==========
	allowRepo := allowlist.NewRepository(database.DB)
	allowSvc := allowlist.NewService(allowRepo, auditSvc)
	allowHandler := allowlist.NewHandler(allowSvc)

	// ========== Users ==========
	userRepo := user.NewRepository(database.DB)
	userSvc := user.NewService(userRepo, auditSvc)
	userHandler := user.NewHandler(userSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, userSvc, notification.NewFCMChannel(), auditSvc)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Reports ==========
	reportSvc := reports.NewService(eventSvc, checkinSvc, userSvc, reports.NewExporter())
	reportHandler := reports.NewHandler(reportSvc)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))

	// Events
	protected.POST("/events", eventHandler.CreateEvent)
	protected.GET("/events", eventHandler.ListEvents)
	protected.GET("/events/upcoming", eventHandler.GetUpcomingEvents)
	protected.GET("/events/active", eventHandler.GetActiveEvents)
	protected.GET("/events/:id", eventHandler.GetEventByID)
	protected.PUT("/events/:id", eventHandler.UpdateEvent)
	protected.DELETE("/events/:id", eventHandler.DeleteEvent)
	protected.GET("/events/:id/timeline", timelineHandler.GetTimeline)
	protected.GET("/events/:id/checkins", checkinHandler.GetGuestList)

	// Tonight (live view)
	protected.GET("/tonight", livesyncHandler.GetTonight)
	protected.POST("/tonight/select", livesyncHandler.SelectEvent)
	protected.DELETE("/tonight/select", livesyncHandler.ClearSelection)
	protected.GET("/tonight/stream", livesyncHandler.Stream)
	protected.POST("/tonight/announcements", timelineHandler.AddAnnouncement)
	protected.POST("/tonight/set-times", timelineHandler.AddSetTime)
	protected.PUT("/tonight/entries/:id", timelineHandler.UpdateEntry)
	protected.DELETE("/tonight/entries/:id", timelineHandler.DeleteEntry)

	// Allowlist
	protected.GET("/approved-emails", allowHandler.ListEmails)
	protected.POST("/approved-emails", allowHandler.AddEmail)
	protected.PUT("/approved-emails/:id", allowHandler.UpdateEmail)
	protected.DELETE("/approved-emails/:id", allowHandler.RemoveEmail)

	// Users
	protected.GET("/users", userHandler.ListUsers)
	protected.GET("/users/:id", userHandler.GetUserByID)
	protected.PUT("/users/:id", userHandler.UpdateUser)
	protected.DELETE("/users/:id", userHandler.DeleteUser)

	// Notifications
	protected.POST("/notifications/push", notifHandler.SendPush)
	protected.GET("/notifications", notifHandler.ListLogs)

	// Reports
	protected.GET("/reports/events/:id/guest-list", reportHandler.GuestListReport)
	protected.GET("/reports/users", reportHandler.UsersReport)

	// Audit logs
	protected.GET("/audit-logs", auditHandler.GetAuditLogs)
	protected.GET("/audit-logs/:id", auditHandler.GetAuditLogByID)

	return &App{
		LiveSync:      manager,
		Notifications: notifSvc,
		AuditSvc:      auditSvc,
	}
}
