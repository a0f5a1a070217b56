package core

import (
	"github.com/calloway-legal/firmsite/api"
	"github.com/calloway-legal/firmsite/api/middleware"
	"github.com/calloway-legal/firmsite/cache"
	"github.com/calloway-legal/firmsite/config"
	articlesRepo "github.com/calloway-legal/firmsite/database/repo/articles"
	imagesRepo "github.com/calloway-legal/firmsite/database/repo/images"
	membersRepo "github.com/calloway-legal/firmsite/database/repo/members"
	messagesRepo "github.com/calloway-legal/firmsite/database/repo/messages"
	settingsRepo "github.com/calloway-legal/firmsite/database/repo/settings"
	subscribersRepo "github.com/calloway-legal/firmsite/database/repo/subscribers"
	handlerContact "github.com/calloway-legal/firmsite/api/handler/contact"
	handlerImages "github.com/calloway-legal/firmsite/api/handler/images"
	handlerNews "github.com/calloway-legal/firmsite/api/handler/news"
	handlerNewsletter "github.com/calloway-legal/firmsite/api/handler/newsletter"
	handlerSite "github.com/calloway-legal/firmsite/api/handler/site"
	handlerTeam "github.com/calloway-legal/firmsite/api/handler/team"
	"github.com/calloway-legal/firmsite/internal/imagestore"
	newsSvc "github.com/calloway-legal/firmsite/internal/news"
	newsletterSvc "github.com/calloway-legal/firmsite/internal/newsletter"
	"github.com/calloway-legal/firmsite/internal/settings"
	teamSvc "github.com/calloway-legal/firmsite/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	DB               *gorm.DB
	CacheProvider    cache.Provider
	LoginHandler     *api.LoginHandler
	APIRateLimiter   *middleware.IPRateLimiter
	ImageRateLimiter *middleware.IPRateLimiter
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	cfg := config.Get()

	// 仓库
	images := imagesRepo.NewRepository(deps.DB)
	articles := articlesRepo.NewRepository(deps.DB)
	members := membersRepo.NewRepository(deps.DB)
	messages := messagesRepo.NewRepository(deps.DB)
	subscribers := subscribersRepo.NewRepository(deps.DB)
	settingsRepository := settingsRepo.NewRepository(deps.DB)

	// 服务
	store := imagestore.New(deps.DB, int64(cfg.UploadMaxSizeMB)<<20)
	newsService := newsSvc.NewService(articles, images, store)
	teamService := teamSvc.NewService(members, images, store)
	newsletterService := newsletterSvc.NewService(subscribers)
	settingsManager := settings.NewManager(settingsRepository)

	// 处理器
	imageHandler := handlerImages.NewHandler(images, deps.CacheProvider)
	newsHandler := handlerNews.NewHandler(articles, newsService)
	teamHandler := handlerTeam.NewHandler(members, teamService)
	contactHandler := handlerContact.NewHandler(messages)
	newsletterHandler := handlerNewsletter.NewHandler(newsletterService, subscribers)
	siteHandler := handlerSite.NewHandler(settingsManager)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // 所有API禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})

	// 图片走独立限流，列表页一次会拉取多张
	imagesGroup := apiGroup.Group("/images")
	imagesGroup.Use(deps.ImageRateLimiter.Middleware())
	{
		imagesGroup.GET("/proxy", imageHandler.ProxyImage) // GET /api/images/proxy?url=
		imagesGroup.GET("/:id", imageHandler.GetImage)     // GET /api/images/{id}
	}

	public := apiGroup.Group("")
	public.Use(deps.APIRateLimiter.Middleware())
	{
		public.GET("/news", newsHandler.ListPublished)    // GET /api/news
		public.GET("/news/:slug", newsHandler.GetBySlug)  // GET /api/news/{slug}
		public.GET("/team", teamHandler.List)             // GET /api/team
		public.GET("/team/:slug", teamHandler.GetBySlug)  // GET /api/team/{slug}
		public.GET("/site", siteHandler.Get)              // GET /api/site
		public.POST("/contact", contactHandler.Submit)    // POST /api/contact

		newsletterGroup := public.Group("/newsletter")
		{
			newsletterGroup.POST("/subscribe", newsletterHandler.Subscribe)  // POST /api/newsletter/subscribe
			newsletterGroup.GET("/confirm", newsletterHandler.Confirm)       // GET /api/newsletter/confirm?token=
			newsletterGroup.GET("/unsubscribe", newsletterHandler.Unsubscribe) // GET /api/newsletter/unsubscribe?token=
		}
	}

	admin := apiGroup.Group("/admin")
	admin.Use(deps.APIRateLimiter.Middleware())
	{
		admin.POST("/login", deps.LoginHandler.LoginHandlerFunc) // POST /api/admin/login

		authed := admin.Group("")
		authed.Use(middleware.RequireAdmin())
		{
			newsGroup := authed.Group("/news")
			{
				newsGroup.GET("", newsHandler.AdminList)
				newsGroup.POST("", newsHandler.AdminCreate)
				newsGroup.GET("/:id", newsHandler.AdminGet)
				newsGroup.PUT("/:id", newsHandler.AdminUpdate)
				newsGroup.DELETE("/:id", newsHandler.AdminDelete)
				newsGroup.POST("/:id/image", newsHandler.AdminUploadImage)
				newsGroup.DELETE("/:id/image", newsHandler.AdminRemoveImage)
			}

			teamGroup := authed.Group("/team")
			{
				teamGroup.GET("", teamHandler.AdminList)
				teamGroup.GET("/:id", teamHandler.AdminGet)
				teamGroup.POST("", teamHandler.AdminCreate)
				teamGroup.PUT("/:id", teamHandler.AdminUpdate)
				teamGroup.DELETE("/:id", teamHandler.AdminDelete)
				teamGroup.POST("/:id/image", teamHandler.AdminUploadImage)
				teamGroup.DELETE("/:id/image", teamHandler.AdminRemoveImage)
			}

			authed.GET("/messages", contactHandler.AdminList)
			authed.DELETE("/messages/:id", contactHandler.AdminDelete)

			authed.GET("/subscribers", newsletterHandler.AdminList)
			authed.DELETE("/subscribers/:id", newsletterHandler.AdminDelete)

			authed.GET("/settings", siteHandler.Get)
			authed.PUT("/settings", siteHandler.AdminUpdate)
		}
	}
}
