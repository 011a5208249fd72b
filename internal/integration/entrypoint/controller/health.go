package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finlit-cms/backend/internal/integration/entrypoint/dto"
)

// HealthController handles the health check endpoint.
type HealthController struct {
	dbHealthChecker func() bool
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
	}
}

// Check handles GET /health requests.
func (c *HealthController) Check(ctx *gin.Context) {
	dbHealthy := c.dbHealthChecker()

	status := "ok"
	code := http.StatusOK
	if !dbHealthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, dto.HealthResponse{
		Status:   status,
		Database: dbHealthy,
	})
}
