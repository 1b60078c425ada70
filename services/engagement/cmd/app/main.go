package main

import (
	"context"
	"time"

	"videotube/pkg/cache"
	"videotube/pkg/config"
	"videotube/pkg/database"
	"videotube/pkg/logger"
	"videotube/pkg/queue"
	"videotube/pkg/tracing"
	engagementApp "videotube/services/engagement/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Engagement Service API
// @version         1.0
// @description     Likes, subscriptions and channel dashboards for the videotube platform
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8002
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

	log := logger.New().With("service", "engagement")

	shutdownTracing, err := tracing.Init(context.Background(), cfg, "engagement", log)
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

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Toggles keep working without RabbitMQ; only notifications are lost.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, engagement events disabled: %v", err)
		queueClient = nil
	}

	engagementApp.Run(cfg, log, db, redisClient, queueClient)
}
