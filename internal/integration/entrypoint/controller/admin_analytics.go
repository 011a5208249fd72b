package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finlit-cms/backend/internal/application/usecase/admin"
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/dto"
)

// AdminAnalyticsController handles the admin-only cross-user scans.
type AdminAnalyticsController struct {
	getCohortsUseCase      *admin.GetCohortsUseCase
	getSegmentationUseCase *admin.GetSegmentationUseCase
}

// NewAdminAnalyticsController creates a new admin analytics controller instance.
func NewAdminAnalyticsController(
	getCohortsUseCase *admin.GetCohortsUseCase,
	getSegmentationUseCase *admin.GetSegmentationUseCase,
) *AdminAnalyticsController {
	return &AdminAnalyticsController{
		getCohortsUseCase:      getCohortsUseCase,
		getSegmentationUseCase: getSegmentationUseCase,
	}
}

// GetCohorts handles GET /analytics/admin/cohorts requests.
func (c *AdminAnalyticsController) GetCohorts(ctx *gin.Context) {
	rng, err := analytics.ParseRange(ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	output, err := c.getCohortsUseCase.Execute(ctx.Request.Context(), admin.GetCohortsInput{Range: rng})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCohortsResponse(output))
}

// GetSegmentation handles GET /analytics/admin/segmentation requests.
func (c *AdminAnalyticsController) GetSegmentation(ctx *gin.Context) {
	rng, err := analytics.ParseRange(ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	output, err := c.getSegmentationUseCase.Execute(ctx.Request.Context(), admin.GetSegmentationInput{Range: rng})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSegmentationResponse(output))
}

func (c *AdminAnalyticsController) handleError(ctx *gin.Context, err error) {
	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		ctx.JSON(statusCodeForAnalyticsError(analyticsErr.Code), dto.ErrorResponse{
			Error: analyticsErr.Message,
			Code:  string(analyticsErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
