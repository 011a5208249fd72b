// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finlit-cms/backend/internal/integration/entrypoint/controller"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	analyticsController      *controller.AnalyticsController
	adminAnalyticsController *controller.AdminAnalyticsController
	transactionController    *controller.TransactionController
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	analyticsController *controller.AnalyticsController,
	adminAnalyticsController *controller.AdminAnalyticsController,
	transactionController *controller.TransactionController,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		analyticsController:      analyticsController,
		adminAnalyticsController: adminAnalyticsController,
		transactionController:    transactionController,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.analyticsController != nil && r.authMiddleware != nil {
			analytics := v1.Group("/analytics")
			analytics.Use(r.authMiddleware.Authenticate())
			{
				analytics.GET("/summary", r.analyticsController.GetSummary)
				analytics.GET("/series", r.analyticsController.GetSeries)
				analytics.GET("/composition", r.analyticsController.GetComposition)
				analytics.GET("/streak", r.analyticsController.GetStreak)
				analytics.GET("/dti", r.analyticsController.GetDTI)
				analytics.GET("/variation", r.analyticsController.GetVariation)
				analytics.PUT("/rollup/:year/:month", r.analyticsController.RecomputeRollup)
				analytics.GET("/rollup/:year/:month", r.analyticsController.GetRollup)

				if r.adminAnalyticsController != nil {
					adminGroup := analytics.Group("/admin")
					adminGroup.Use(r.authMiddleware.RequireAdmin())
					{
						adminGroup.GET("/cohorts", r.adminAnalyticsController.GetCohorts)
						adminGroup.GET("/segmentation", r.adminAnalyticsController.GetSegmentation)
					}
				}
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.POST("", r.transactionController.Create)
				transactions.GET("", r.transactionController.List)
			}
		}
	}
}
