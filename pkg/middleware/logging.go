package middleware

import (
	"time"

	"videotube/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s -> %d (%s) user=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString(UserIDKey)}
		switch {
		case status >= 500:
			log.Error(line, args...)
		case status >= 400:
			log.Warn(line, args...)
		default:
			log.Info(line, args...)
		}
	}
}
