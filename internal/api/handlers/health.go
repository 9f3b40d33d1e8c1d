package handlers

import (
	"net/http"
	"time"

	"github.com/rxbridge/website-backend/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check is the liveness probe. Registered before the rate limiters so
// monitoring can never be locked out.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}
