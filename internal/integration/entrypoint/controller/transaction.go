package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/application/usecase/transaction"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/dto"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles the ledger endpoints.
type TransactionController struct {
	createTransactionUseCase *transaction.CreateTransactionUseCase
	listTransactionsUseCase  *transaction.ListTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createTransactionUseCase *transaction.CreateTransactionUseCase,
	listTransactionsUseCase *transaction.ListTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		createTransactionUseCase: createTransactionUseCase,
		listTransactionsUseCase:  listTransactionsUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var request dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	occurredAt, err := time.ParseInLocation("2006-01-02", request.OccurredAt, time.UTC)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid occurred_at format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingOccurredAt),
		})
		return
	}

	origin := request.Origin
	if origin == "" {
		origin = string(entity.OriginAPI)
	}

	input := transaction.CreateTransactionInput{
		UserID:             userID,
		Kind:               entity.MovementKind(request.Kind),
		Amount:             decimal.NewFromFloat(request.Amount),
		OccurredAt:         occurredAt,
		Description:        request.Description,
		Origin:             entity.TransactionOrigin(origin),
		CategoryCode:       request.CategoryCode,
		Essential:          request.Essential,
		Fixed:              request.Fixed,
		Recurring:          request.Recurring,
		FinancialSubtype:   entity.FinancialSubtype(request.FinancialSubtype),
		IsInternalTransfer: request.IsInternalTransfer,
	}

	output, err := c.createTransactionUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	filter := adapter.TransactionFilter{}

	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.UTC)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid from format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		filter.From = &from
	}
	if toStr := ctx.Query("to"); toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, time.UTC)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid to format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		filter.To = &to
	}
	if kindStr := ctx.Query("kind"); kindStr != "" {
		kind := entity.MovementKind(kindStr)
		filter.Kind = &kind
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			filter.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Filter: filter,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// handleTransactionError maps transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var transactionErr *domainerror.TransactionError
	if errors.As(err, &transactionErr) {
		statusCode := http.StatusBadRequest
		if transactionErr.Code == domainerror.ErrCodeTransactionInternalError {
			statusCode = http.StatusInternalServerError
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: transactionErr.Message,
			Code:  string(transactionErr.Code),
		})
		return
	}

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
