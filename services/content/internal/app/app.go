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
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/storage"
	"videotube/pkg/tasks"
	contentHTTP "videotube/services/content/internal/controller/http"
	"videotube/services/content/internal/repo/cache"
	"videotube/services/content/internal/repo/persistent"
	"videotube/services/content/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "videotube/services/content/docs" // Swagger docs
)

const profileCacheTTL = 5 * time.Minute

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, files storage.FileStorage, enqueuer tasks.TaskEnqueuer) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	videoRepo := persistent.NewVideoRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	tweetRepo := persistent.NewTweetRepository(db)
	playlistRepo := persistent.NewPlaylistRepository(db)
	likeReader := persistent.NewLikeReader(db)
	users := identity.NewStore(db, profileCacheTTL)

	var views cache.ViewTracker
	if redisClient != nil {
		views = cache.NewViewTracker(redisClient)
	}
	var cleanup tasks.CleanupScheduler
	if enqueuer != nil {
		cleanup = tasks.NewCleanupScheduler(enqueuer)
	}

	// Initialize use cases
	guard := usecase.NewOwnershipGuard(persistent.NewOwnerRepository(db))
	videoUseCase := usecase.NewVideoUseCase(videoRepo, likeReader, users, guard, files, cleanup, views, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, videoRepo, likeReader, users, guard, log)
	tweetUseCase := usecase.NewTweetUseCase(tweetRepo, likeReader, users, guard, log)
	playlistUseCase := usecase.NewPlaylistUseCase(playlistRepo, videoRepo, users, guard, log)

	// Initialize HTTP handlers
	videoHandler := contentHTTP.NewVideoHandler(videoUseCase, cfg.UploadDir, log)
	commentHandler := contentHTTP.NewCommentHandler(commentUseCase, log)
	tweetHandler := contentHTTP.NewTweetHandler(tweetUseCase, log)
	playlistHandler := contentHTTP.NewPlaylistHandler(playlistUseCase, log)

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
		api.GET("/videos", videoHandler.ListVideos)
		api.POST("/videos", videoHandler.PublishVideo)
		api.GET("/videos/:videoId", videoHandler.GetVideo)
		api.PATCH("/videos/:videoId", videoHandler.UpdateVideo)
		api.DELETE("/videos/:videoId", videoHandler.DeleteVideo)
		api.PATCH("/videos/toggle/publish/:videoId", videoHandler.TogglePublishStatus)
		api.POST("/videos/:videoId/view", videoHandler.RecordView)

		api.GET("/comments/:videoId", commentHandler.GetVideoComments)
		api.POST("/comments/:videoId", commentHandler.AddComment)
		api.PATCH("/comments/c/:commentId", commentHandler.UpdateComment)
		api.DELETE("/comments/c/:commentId", commentHandler.DeleteComment)

		api.POST("/tweets", tweetHandler.CreateTweet)
		api.GET("/tweets/user/:userId", tweetHandler.GetUserTweets)
		api.PATCH("/tweets/:tweetId", tweetHandler.UpdateTweet)
		api.DELETE("/tweets/:tweetId", tweetHandler.DeleteTweet)

		api.POST("/playlist", playlistHandler.CreatePlaylist)
		api.GET("/playlist/user/:userId", playlistHandler.GetUserPlaylists)
		api.GET("/playlist/:playlistId", playlistHandler.GetPlaylist)
		api.PATCH("/playlist/:playlistId", playlistHandler.UpdatePlaylist)
		api.DELETE("/playlist/:playlistId", playlistHandler.DeletePlaylist)
		api.PATCH("/playlist/add/:videoId/:playlistId", playlistHandler.AddVideo)
		api.PATCH("/playlist/remove/:videoId/:playlistId", playlistHandler.RemoveVideo)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Content service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down content service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before closing what they depend on.
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
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

	log.Info("Content service exited")
}
