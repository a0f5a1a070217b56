// Package core wires dependencies into the gin router and http.Server.
package core

import (
	"net/http"
	"time"

	"github.com/calloway-legal/firmsite/api"
	"github.com/calloway-legal/firmsite/api/middleware"
	"github.com/calloway-legal/firmsite/cache"
	"github.com/calloway-legal/firmsite/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DB            *gorm.DB
	CacheProvider cache.Provider
}

// 启动gin
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())
	router.Use(middleware.AccessLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 限制上传文件大小
	router.MaxMultipartMemory = int64(cfg.UploadMaxSizeMB) << 20

	// 速率限制
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	imageRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitImageRPS, cfg.RateLimitImageBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		apiRateLimiter.StopCleanup()
		imageRateLimiter.StopCleanup()
	}

	// 登录失败限制器：多实例部署用 Redis 共享计数，否则退化为进程内计数
	var attemptStore middleware.AttemptStore
	if redisCache, ok := deps.CacheProvider.(*cache.Redis); ok {
		attemptStore = middleware.NewRedisAttemptStore(redisCache.Client(), cfg.LoginLockout)
	} else {
		attemptStore = middleware.NewMemoryAttemptStore(cfg.LoginLockout)
	}
	loginLimiter := middleware.NewLoginLimiter(attemptStore, cfg.LoginMaxRetries, cfg.LoginLockout)

	healthHandler := NewHealthHandler(deps.DB, deps.CacheProvider)
	router.GET("/health", healthHandler.Handle)
	router.GET("/version", func(context *gin.Context) {
		context.JSON(http.StatusOK, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
		})
	})

	loginHandler := api.NewLoginHandler(cfg, loginLimiter)

	RegisterRoutes(router, &RouterDependencies{
		DB:               deps.DB,
		CacheProvider:    deps.CacheProvider,
		LoginHandler:     loginHandler,
		APIRateLimiter:   apiRateLimiter,
		ImageRateLimiter: imageRateLimiter,
	})

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, clean := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}
