package utils

import (
	"net/http"

	"github.com/rxbridge/website-backend/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleValidationFailure sends a 400 with the full list of reasons
func HandleValidationFailure(c *gin.Context, details []string) {
	c.JSON(http.StatusBadRequest, common.NewValidationErrorResponse(details))
}

// HandleRejection sends a 400 with a generic message and no detail.
// Used for spam, honeypot and timing failures so that callers cannot
// probe which heuristic fired.
func HandleRejection(c *gin.Context) {
	c.JSON(http.StatusBadRequest, common.NewRejectionResponse())
}
