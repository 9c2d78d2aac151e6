package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the JSON envelope for non-redirect responses. Details carries
// field-level validation errors or the failed pipeline step.
type Body struct {
	Message string `json:"message"`
	Error   bool   `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func RespondOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Body{Message: message})
}

func RespondError(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Body{
		Message: message,
		Error:   true,
		Details: details,
	})
}
