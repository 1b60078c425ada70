package response

import (
	"net/http"

	"videotube/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type Body struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	ErrorKind  apperr.Kind `json:"errorKind,omitempty"`
}

func OK(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusOK, data, message)
}

func Created(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusCreated, data, message)
}

func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Body{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes the failure envelope for err. Only the client-facing message of
// an *apperr.Error is exposed; anything else becomes a generic 500.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	Abort(c, apperr.StatusCode(kind), kind, apperr.MessageOf(err))
}

func Abort(c *gin.Context, status int, kind apperr.Kind, message string) {
	c.AbortWithStatusJSON(status, Body{
		StatusCode: status,
		Message:    message,
		Success:    false,
		ErrorKind:  kind,
	})
}
