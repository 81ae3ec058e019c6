package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

type HealthHandler struct {
	db             *gorm.DB
	store          storage.FileStore
	mailConfigured bool
}

func NewHealthHandler(db *gorm.DB, store storage.FileStore, mailConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, store: store, mailConfigured: mailConfigured}
}

// GET / and GET /health
func (hh *HealthHandler) HealthCheck(c *gin.Context) {
	database := "not_configured"
	if hh.db != nil {
		database = "connected"
		if sqlDB, err := hh.db.DB(); err != nil || sqlDB.Ping() != nil {
			database = "unreachable"
		}
	}

	uploads := "unavailable"
	if hh.store != nil {
		if _, err := os.Stat(hh.store.Dir()); err == nil {
			uploads = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "MECHGENZ Contact Form API",
		"database":        database,
		"uploads":         uploads,
		"mail_configured": hh.mailConfigured,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
