package core

import (
	"net/http"
	"time"

	"github.com/calloway-legal/firmsite/cache"
	"github.com/calloway-legal/firmsite/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db    *gorm.DB
	cache cache.Provider
}

// NewHealthHandler 健康检查
func NewHealthHandler(db *gorm.DB, cacheProvider cache.Provider) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheProvider}
}

// Handle GET /health
func (h *HealthHandler) Handle(c *gin.Context) {
	checks := gin.H{
		"database": h.checkDatabase(),
		"cache":    h.checkCache(),
	}

	httpStatus := http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":  statusWord(httpStatus),
		"version": config.Version,
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"checks":  checks,
	})
}

func statusWord(httpStatus int) string {
	if httpStatus == http.StatusOK {
		return "ok"
	}
	return "degraded"
}

func (h *HealthHandler) checkDatabase() string {
	if h.db == nil {
		return "not initialized"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkCache() string {
	if h.cache == nil {
		return "not initialized"
	}
	return "ok"
}
