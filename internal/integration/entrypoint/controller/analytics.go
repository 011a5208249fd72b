// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/dto"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles the user-scoped analytics endpoints.
type AnalyticsController struct {
	computeSummaryUseCase      *analytics.ComputeSummaryUseCase
	getMonthlySeriesUseCase    *analytics.GetMonthlySeriesUseCase
	getCompositionUseCase      *analytics.GetCompositionUseCase
	getStreakUseCase           *analytics.GetStreakUseCase
	getDTIUseCase              *analytics.GetDTIUseCase
	getMonthlyVariationUseCase *analytics.GetMonthlyVariationUseCase
	recomputeRollupUseCase     *analytics.RecomputeRollupUseCase
	getRollupUseCase           *analytics.GetRollupUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	computeSummaryUseCase *analytics.ComputeSummaryUseCase,
	getMonthlySeriesUseCase *analytics.GetMonthlySeriesUseCase,
	getCompositionUseCase *analytics.GetCompositionUseCase,
	getStreakUseCase *analytics.GetStreakUseCase,
	getDTIUseCase *analytics.GetDTIUseCase,
	getMonthlyVariationUseCase *analytics.GetMonthlyVariationUseCase,
	recomputeRollupUseCase *analytics.RecomputeRollupUseCase,
	getRollupUseCase *analytics.GetRollupUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		computeSummaryUseCase:      computeSummaryUseCase,
		getMonthlySeriesUseCase:    getMonthlySeriesUseCase,
		getCompositionUseCase:      getCompositionUseCase,
		getStreakUseCase:           getStreakUseCase,
		getDTIUseCase:              getDTIUseCase,
		getMonthlyVariationUseCase: getMonthlyVariationUseCase,
		recomputeRollupUseCase:     recomputeRollupUseCase,
		getRollupUseCase:           getRollupUseCase,
	}
}

// GetSummary handles GET /analytics/summary requests.
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	rng, err := analytics.ParseRange(ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	output, err := c.computeSummaryUseCase.Execute(ctx.Request.Context(), analytics.ComputeSummaryInput{
		UserID: userID,
		Range:  rng,
		TopN:   parsePositiveInt(ctx.Query("top")),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(output))
}

// GetSeries handles GET /analytics/series requests.
func (c *AnalyticsController) GetSeries(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	fromYear, fromMonth, err := analytics.ParseMonth(ctx.Query("from_month"))
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}
	toYear, toMonth, err := analytics.ParseMonth(ctx.Query("to_month"))
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	output, err := c.getMonthlySeriesUseCase.Execute(ctx.Request.Context(), analytics.GetMonthlySeriesInput{
		UserID:    userID,
		FromYear:  fromYear,
		FromMonth: fromMonth,
		ToYear:    toYear,
		ToMonth:   toMonth,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySeriesResponse(output))
}

// GetComposition handles GET /analytics/composition requests.
func (c *AnalyticsController) GetComposition(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	rng, err := analytics.ParseRange(ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	output, err := c.getCompositionUseCase.Execute(ctx.Request.Context(), analytics.GetCompositionInput{
		UserID: userID,
		Range:  rng,
		TopN:   parsePositiveInt(ctx.Query("top")),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompositionResponse(output))
}

// GetStreak handles GET /analytics/streak requests.
func (c *AnalyticsController) GetStreak(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	rng, err := analytics.ParseRange(ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	output, err := c.getStreakUseCase.Execute(ctx.Request.Context(), analytics.GetStreakInput{
		UserID: userID,
		Range:  rng,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StreakResponse{MaxStreakDays: output.MaxStreakDays})
}

// GetDTI handles GET /analytics/dti requests.
func (c *AnalyticsController) GetDTI(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	rng, err := analytics.ParseRange(ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	output, err := c.getDTIUseCase.Execute(ctx.Request.Context(), analytics.GetDTIInput{
		UserID: userID,
		Range:  rng,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DTIResponse{
		DTI:               output.DTI,
		DebtPaymentsTotal: toFloat(output.DebtPaymentsTotal),
		IncomeTotal:       toFloat(output.IncomeTotal),
	})
}

// GetVariation handles GET /analytics/variation requests.
func (c *AnalyticsController) GetVariation(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		c.badRequest(ctx, "Invalid year", domainerror.ErrCodeInvalidYear)
		return
	}
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		c.badRequest(ctx, "Invalid month", domainerror.ErrCodeInvalidMonth)
		return
	}

	input := analytics.GetMonthlyVariationInput{
		UserID:        userID,
		Year:          year,
		Month:         month,
		AllowZeroBase: ctx.Query("allow_zero_base") == "true",
	}

	if budgetStr := ctx.Query("budget"); budgetStr != "" {
		budget, err := decimal.NewFromString(budgetStr)
		if err != nil || budget.IsNegative() {
			c.badRequest(ctx, "Invalid budget", domainerror.ErrCodeInvalidDateFormat)
			return
		}
		input.Budget = &budget
	}

	output, err := c.getMonthlyVariationUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVariationResponse(output))
}

// RecomputeRollup handles PUT /analytics/rollup/:year/:month requests.
func (c *AnalyticsController) RecomputeRollup(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	year, month, ok := c.parseRollupKey(ctx)
	if !ok {
		return
	}

	output, err := c.recomputeRollupUseCase.Execute(ctx.Request.Context(), analytics.RecomputeRollupInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(output))
}

// GetRollup handles GET /analytics/rollup/:year/:month requests.
func (c *AnalyticsController) GetRollup(ctx *gin.Context) {
	userID, ok := c.resolveUserID(ctx)
	if !ok {
		return
	}

	year, month, ok := c.parseRollupKey(ctx)
	if !ok {
		return
	}

	output, err := c.getRollupUseCase.Execute(ctx.Request.Context(), analytics.GetRollupInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(output))
}

// resolveUserID returns the subject of the request: the authenticated
// user, or the user_id query override when the caller is an admin.
func (c *AnalyticsController) resolveUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}

	override := ctx.Query("user_id")
	if override == "" {
		return userID, true
	}

	role, _ := middleware.GetUserRoleFromContext(ctx)
	if role != entity.RoleAdmin {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "Only admins may query another user",
			Code:  string(domainerror.ErrCodeForbidden),
		})
		return uuid.Nil, false
	}

	target, err := uuid.Parse(override)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user_id format",
		})
		return uuid.Nil, false
	}
	return target, true
}

func (c *AnalyticsController) parseRollupKey(ctx *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		c.badRequest(ctx, "Invalid year", domainerror.ErrCodeInvalidYear)
		return 0, 0, false
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil {
		c.badRequest(ctx, "Invalid month", domainerror.ErrCodeInvalidMonth)
		return 0, 0, false
	}
	return year, month, true
}

func (c *AnalyticsController) badRequest(ctx *gin.Context, message string, code domainerror.AnalyticsErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// handleAnalyticsError maps analytics errors to HTTP responses.
func (c *AnalyticsController) handleAnalyticsError(ctx *gin.Context, err error) {
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

// statusCodeForAnalyticsError maps analytics error codes to HTTP status codes.
func statusCodeForAnalyticsError(code domainerror.AnalyticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingFromDate,
		domainerror.ErrCodeMissingToDate,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidTopN:
		return http.StatusBadRequest
	case domainerror.ErrCodeRollupNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeScanTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// parsePositiveInt parses an optional positive integer query value,
// returning 0 (use the configured default) when absent or malformed.
func parsePositiveInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
