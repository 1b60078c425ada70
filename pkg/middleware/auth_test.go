package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"videotube/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func authRouter(jwtService *jwt.Service) *gin.Engine {
	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey)})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("user-123", "viewer")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	assert.Equal(t, "user-123", body["user_id"])
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	for name, header := range map[string]string{
		"no header":      "",
		"invalid format": "InvalidFormat token",
		"empty bearer":   "Bearer ",
		"invalid token":  "Bearer invalid-token",
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			authRouter(jwtService).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &body)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Unauthorized", body["errorKind"])
		})
	}
}
