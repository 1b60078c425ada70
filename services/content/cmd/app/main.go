package main

import (
	"context"
	"time"

	"videotube/pkg/cache"
	"videotube/pkg/config"
	"videotube/pkg/database"
	"videotube/pkg/logger"
	"videotube/pkg/media"
	"videotube/pkg/storage"
	"videotube/pkg/tracing"
	contentApp "videotube/services/content/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// @title           Content Service API
// @version         1.0
// @description     Videos, comments, tweets and playlists for the videotube platform
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8001
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New().With("service", "content")

	shutdownTracing, err := tracing.Init(context.Background(), cfg, "content", log)
	if err != nil {
		log.Error("Failed to initialise tracing: %v", err)
		panic(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("Failed to flush traces: %v", err)
		}
	}()

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	files, err := storage.New(cfg, media.NewFFProbe(), log)
	if err != nil {
		log.Error("Failed to create file storage: %v", err)
		panic(err)
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer taskClient.Close()

	contentApp.Run(cfg, log, db, redisClient, files, taskClient)
}
