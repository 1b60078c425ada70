package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"videotube/pkg/config"
	"videotube/pkg/identity"
	"videotube/pkg/jwt"
	"videotube/pkg/lock"
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/queue"
	engagementHTTP "videotube/services/engagement/internal/controller/http"
	"videotube/services/engagement/internal/repo/persistent"
	"videotube/services/engagement/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "videotube/services/engagement/docs" // Swagger docs
)

const (
	profileCacheTTL = 5 * time.Minute
	lockPrefix      = "videotube:"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	likeRepo := persistent.NewLikeRepository(db)
	subscriptionRepo := persistent.NewSubscriptionRepository(db)
	targetRepo := persistent.NewTargetRepository(db)
	dashboardRepo := persistent.NewDashboardRepository(db)
	users := identity.NewStore(db, profileCacheTTL)

	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.LockBackend == "redis" && redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, lockPrefix, log)
		log.Info("Toggle locks backed by Redis")
	}

	var publisher queue.Publisher
	if queueClient != nil {
		publisher = queueClient
	}

	// Initialize use cases
	engine := usecase.NewToggleEngine(likeRepo, subscriptionRepo, targetRepo, users, locker, publisher, log)
	likeUseCase := usecase.NewLikeUseCase(engine, likeRepo, users, log)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(engine, subscriptionRepo, users, log)
	dashboardUseCase := usecase.NewDashboardUseCase(dashboardRepo, log)

	// Initialize HTTP handlers
	likeHandler := engagementHTTP.NewLikeHandler(likeUseCase, log)
	subscriptionHandler := engagementHTTP.NewSubscriptionHandler(subscriptionUseCase, log)
	dashboardHandler := engagementHTTP.NewDashboardHandler(dashboardUseCase, log)

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RequestLogger(log))
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow, log))

	{
		api.POST("/likes/toggle/v/:videoId", likeHandler.ToggleVideoLike)
		api.POST("/likes/toggle/c/:commentId", likeHandler.ToggleCommentLike)
		api.POST("/likes/toggle/t/:tweetId", likeHandler.ToggleTweetLike)
		api.GET("/likes/videos", likeHandler.GetLikedVideos)

		api.POST("/subscriptions/c/:channelId", subscriptionHandler.ToggleSubscription)
		api.GET("/subscriptions/c/:channelId", subscriptionHandler.GetChannelSubscribers)
		api.GET("/subscriptions/c/:channelId/status", subscriptionHandler.IsSubscribed)
		api.GET("/subscriptions/u/:subscriberId", subscriptionHandler.GetSubscribedChannels)

		api.GET("/dashboard/stats", dashboardHandler.GetChannelStats)
		api.GET("/dashboard/stats/:channelId", dashboardHandler.GetChannelStats)
		api.GET("/dashboard/videos", dashboardHandler.GetChannelVideos)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Engagement service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down engagement service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := engine.Drain(ctx); err != nil {
		log.Warn("Engagement events still publishing at shutdown: %v", err)
	}

	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	log.Info("Engagement service exited")
}
