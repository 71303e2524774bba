// internal/pkg/response/response.go
package response

import (
	"net/http"

	xerrors "motomarket-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	// Retryable tells the client this failure looked like a transport
	// problem and should be offered a retry instead of an inline error.
	Retryable bool `json:"retryable,omitempty"`
	// Fields carries per-field validation messages keyed by field name.
	Fields map[string]string `json:"fields,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response. Transport-looking errors are
// flagged retryable so the client routes them to its retry path.
func Error(c *gin.Context, code int, message string, err error) {
	c.Abort()

	resp := Response{
		Success:   false,
		Message:   message,
		Retryable: xerrors.IsNetwork(err),
	}
	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// ValidationError sends a 400 with per-field messages. The form keeps the
// user where they are; nothing reaches the backend.
func ValidationError(c *gin.Context, message string, fields map[string]string) {
	c.Abort()
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Fields:  fields,
	})
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}
