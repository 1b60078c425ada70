package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"videotube/pkg/apperr"
	"videotube/pkg/logger"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware counts requests per (path, caller) in fixed Redis windows.
// With no Redis client it falls back to an in-process token bucket per caller.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	if redisClient == nil {
		return localRateLimit(limit, window)
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), callerKey(c))

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			log.Error("Rate limit check failed: %v", err)
			response.Abort(c, http.StatusInternalServerError, apperr.KindInternal, "Rate limit check failed")
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			response.Abort(c, http.StatusTooManyRequests, apperr.KindValidation, "Rate limit exceeded")
			return
		}

		c.Next()
	}
}

func localRateLimit(limit int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	every := rate.Every(window / time.Duration(limit))

	return func(c *gin.Context) {
		key := callerKey(c)

		mu.Lock()
		limiter, ok := limiters[key]
		if !ok {
			limiter = rate.NewLimiter(every, limit)
			limiters[key] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			response.Abort(c, http.StatusTooManyRequests, apperr.KindValidation, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if userID := c.GetString(UserIDKey); userID != "" {
		return userID
	}
	return c.ClientIP()
}
