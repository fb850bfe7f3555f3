package routes

import (
	"github.com/Redes-Bien-Manejadas/shortwhats-app/config"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/controllers"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/middleware"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://shortwhats.app", "https://www.shortwhats.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
	}))

	// Лимитер один на оба публичных эндпоинта: квота клиента общая
	limiter := utils.NewRateLimiter(utils.RateLimitWindow, utils.RateLimitMaxRequests)
	debouncer := utils.NewDebouncer(utils.DebounceWindow)

	linkController := controllers.NewLinkController()
	clickController := controllers.NewClickController(limiter, debouncer)
	contactController := controllers.NewContactController(cfg, limiter)
	adminController := controllers.NewAdminController(cfg)
	uploadController := controllers.NewUploadController(cfg)
	analyticsController := controllers.NewAnalyticsController()

	// Публичные маршруты (microlanding, redirect, учёт кликов)
	r.GET("/links/:slug", linkController.GetBySlug)
	r.POST("/links/:slug/clicks", clickController.Increment)
	r.POST("/contact/whatsapp", contactController.WhatsApp)

	r.POST("/admin/login", adminController.Login)

	// Маршруты дашборда (JWT)
	authGroup := r.Group("/", middleware.JWTAuthMiddleware())
	{
		authGroup.GET("/links", linkController.GetAll)
		authGroup.POST("/links", linkController.Create)
		authGroup.PUT("/links/:slug", linkController.Update)
		authGroup.DELETE("/links/:slug", linkController.Delete)
		authGroup.GET("/links/search", linkController.Search)

		authGroup.POST("/upload", uploadController.Upload)

		adminGroup := authGroup.Group("/admin")
		{
			adminGroup.GET("/credentials", adminController.GetCredentials)
			adminGroup.POST("/credentials", adminController.SaveCredentials)
			adminGroup.POST("/logout", adminController.Logout)
			adminGroup.GET("/bot-detections", analyticsController.GetBotDetections)
			adminGroup.GET("/bot-detections/stats", analyticsController.GetBotDetectionStats)
		}
	}

	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	return r
}
