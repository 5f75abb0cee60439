package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sitecel/portfolio-api/internal/ai"
	"github.com/sitecel/portfolio-api/internal/config"
	"github.com/sitecel/portfolio-api/internal/database"
	"github.com/sitecel/portfolio-api/internal/handler"
	"github.com/sitecel/portfolio-api/internal/middleware"
	"github.com/sitecel/portfolio-api/internal/repository"
	"github.com/sitecel/portfolio-api/internal/service"
	"github.com/sitecel/portfolio-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Debug); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	projectRepo := repository.NewProjectRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	projectService := service.NewProjectService(projectRepo)
	chatService := service.NewChatService(ai.NewGeminiClient(cfg.GeminiAPIKey))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	chatHandler := handler.NewChatHandler(chatService)
	healthHandler := handler.NewHealthHandler(database.DB)

	// Setup Gin router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Rate limiting for the public endpoints, active when Redis is configured
	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		limiter = middleware.NewRateLimiter(redis.NewClient(opt), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		})
	}
	limited := func() gin.HandlerFunc {
		if limiter != nil {
			return limiter.Middleware()
		}
		return func(c *gin.Context) { c.Next() }
	}

	// Liveness endpoints, no auth
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/db-check", healthHandler.DBCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", limited(), authHandler.Login)
		v1.GET("/auth/me", middleware.AuthMiddleware(authService), authHandler.Me)

		// Public project reads
		v1.GET("/projects", projectHandler.List)
		v1.GET("/projects/:id", projectHandler.Get)

		// Project mutations require an admin token
		admin := v1.Group("", middleware.AuthMiddleware(authService), middleware.AdminMiddleware(authService))
		{
			admin.POST("/projects", projectHandler.Create)
			admin.PUT("/projects/:id", projectHandler.Update)
			admin.DELETE("/projects/:id", projectHandler.Delete)
			admin.PATCH("/projects/:id/publish", projectHandler.TogglePublish)
		}

		v1.POST("/chat", limited(), chatHandler.Chat)
		v1.GET("/chat/health", chatHandler.Health)
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
