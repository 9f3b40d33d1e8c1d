package utils

import (
	"github.com/rxbridge/website-backend/internal/logging"

	"github.com/gin-gonic/gin"
)

// LogError logs an error with a message using the singleton logger
func LogError(err error, message string) {
	logger := logging.GetGlobalLogger()
	logger.Error("%s: %v", message, err)
}

// HandleAPIError is a utility function for consistent error handling across the API.
// The error itself is logged but never exposed to the client; the caller supplies
// the status code and the message the client is allowed to see.
func HandleAPIError(c *gin.Context, err error, status int, body interface{}) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		"request failed",
		err,
	)

	c.JSON(status, body)
}
