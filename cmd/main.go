package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/nmoralesv/event-night-backend/config"
	"github.com/nmoralesv/event-night-backend/database"
	"github.com/nmoralesv/event-night-backend/internal/allowlist"
	"github.com/nmoralesv/event-night-backend/internal/auditlog"
	"github.com/nmoralesv/event-night-backend/internal/changefeed"
	"github.com/nmoralesv/event-night-backend/internal/checkin"
	"github.com/nmoralesv/event-night-backend/internal/event"
	"github.com/nmoralesv/event-night-backend/internal/notification"
	"github.com/nmoralesv/event-night-backend/internal/timeline"
	"github.com/nmoralesv/event-night-backend/internal/user"
	"github.com/nmoralesv/event-night-backend/routes"
	"github.com/nmoralesv/event-night-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Change feed: Redis pub/sub when available, in-process fallback for
	// single-replica deployments without Redis.
	var feed changefeed.Feed
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis unavailable (%v), using in-process change feed", err)
		feed = changefeed.NewMemoryFeed()
	} else {
		log.Println("✅ Redis connected, change feed on pub/sub")
		feed = changefeed.NewRedisFeed(utils.RedisClient)
	}

	// 🔥 Init Firebase - SINGLE INITIALIZATION POINT
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&event.Event{},
		&timeline.TimelineEntry{},
		&timeline.Reaction{},
		&checkin.Checkin{},
		&allowlist.ApprovedEmail{},
		&user.User{},
		&notification.NotificationLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Cache-Control", "Pragma", "Expires"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Flyer uploads live on the persistent volume
	uploadDir := config.UploadPath
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		panic(fmt.Sprintf("❌ Failed to create upload directory: %v", err))
	}

	router.GET("/uploads/:filename", func(c *gin.Context) {
		serveUpload(c, uploadDir)
	})

	router.POST("/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File not found in request"})
			return
		}

		// Server-side name: concurrent uploads of "flyer.jpg" must not
		// overwrite each other.
		filename := storedFilename(file.Filename)
		dst := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save file: %v", err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("File '%s' uploaded successfully!", file.Filename),
			"url":     fmt.Sprintf("%s/uploads/%s", config.BaseURL, filename),
		})
	})

	// Register routes and build the service graph
	app := routes.Setup(router, cfg, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live sync: track the active event from startup
	if err := app.LiveSync.Start(ctx); err != nil {
		panic(fmt.Sprintf("❌ Live sync manager failed to start: %v", err))
	}
	defer app.LiveSync.Close()

	// Kafka: platform services queue push requests for broadcast
	go notification.StartKafkaConsumer(ctx, utils.NewPushRequestReader(cfg), app.Notifications)

	// Nightly audit log retention
	c := cron.New()
	c.AddFunc("0 4 * * *", func() {
		deleted, err := app.AuditSvc.PurgeOlderThan(ctx, 90*24*time.Hour)
		if err != nil {
			log.Printf("❌ Audit log purge failed: %v", err)
			return
		}
		log.Printf("✅ Audit log purge removed %d rows", deleted)
	})
	c.Start()
	defer c.Stop()

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Printf("📁 Upload directory: %s\n", uploadDir)

	if utils.IsFCMEnabled() {
		fmt.Println("✅ Firebase Cloud Messaging enabled")
	} else {
		fmt.Println("ℹ️ Firebase Cloud Messaging disabled")
		if err := utils.GetInitError(); err != nil {
			fmt.Printf("   Reason: %v\n", err)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}

// serveUpload streams a stored flyer image back to the dashboard.
func serveUpload(c *gin.Context, uploadDir string) {
	filename := c.Param("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameters"})
		return
	}

	cleanPath := filepath.Clean(filepath.Join(uploadDir, filename))
	if !strings.HasPrefix(cleanPath, filepath.Clean(uploadDir)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	info, err := os.Stat(cleanPath)
	if os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File access error"})
		return
	}

	contentType := contentTypeFor(filename)
	c.Header("Content-Type", contentType)
	c.Header("Content-Length", fmt.Sprintf("%d", info.Size()))
	c.Header("Cache-Control", "public, max-age=3600")

	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", filename))
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	}

	c.File(cleanPath)
}

// storedFilename picks the on-disk name for an upload: a fresh UUID with the
// original extension. The client-supplied name is never trusted as a path.
func storedFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return uuid.NewString() + ext
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
