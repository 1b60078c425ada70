package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"videotube/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestOK(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		OK(c, gin.H{"id": "v1"}, "Video fetched successfully")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Video fetched successfully", body["message"])
	assert.Equal(t, "v1", body["data"].(map[string]interface{})["id"])
	assert.NotContains(t, body, "errorKind")
}

func TestError_AppError(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Error(c, apperr.Unauthorized("You are not the owner of this video"))
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized", body["errorKind"])
	assert.Equal(t, "You are not the owner of this video", body["message"])
}

func TestError_HidesRawErrors(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Error(c, errors.New("pq: duplicate key value violates unique constraint"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "InternalError", body["errorKind"])
	assert.Equal(t, "Internal server error", body["message"])
}
