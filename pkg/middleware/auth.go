package middleware

import (
	"net/http"
	"strings"

	"videotube/pkg/apperr"
	"videotube/pkg/jwt"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
