package images

import (
	"net/http"
	"time"

	"github.com/calloway-legal/firmsite/cache"
	"github.com/calloway-legal/firmsite/config"
	"github.com/calloway-legal/firmsite/database/repo/images"
)

// Handler 图片处理器
type Handler struct {
	repo     *images.Repository
	cache    cache.Provider
	cacheTTL time.Duration
	proxy    *http.Client
}

// NewHandler 图片处理器
func NewHandler(repo *images.Repository, cacheProvider cache.Provider) *Handler {
	cfg := config.Get()
	return &Handler{
		repo:     repo,
		cache:    cacheProvider,
		cacheTTL: time.Duration(cfg.CacheImageTTL) * time.Second,
		proxy: &http.Client{
			Timeout: cfg.ProxyTimeout,
		},
	}
}
