// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// monthPattern validates YYYY-MM month parameters.
var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	service       *expense.Service
	monthlyBudget decimal.Decimal
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(service *expense.Service, monthlyBudget decimal.Decimal) *ExpenseController {
	return &ExpenseController{
		service:       service,
		monthlyBudget: monthlyBudget,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	expenses, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to fetch expenses")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		c.notFound(ctx)
		return
	}

	found, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to fetch expense")
		return
	}

	ctx.JSON(http.StatusOK, dto.ExpenseSingleResponse{
		Success: true,
		Data:    dto.ToExpenseResponse(found),
	})
}

// Create handles POST /expenses requests. The response includes the
// post-write remaining budget and category totals for the record's month,
// so budget exceedance is detected the instant the triggering expense is
// added.
func (c *ExpenseController) Create(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "Amount, category, and date are required")
		return
	}

	if req.Amount <= 0 {
		c.badRequest(ctx, "Amount must be greater than 0")
		return
	}

	category := entity.Category(req.Category)
	if !category.IsValid() {
		c.badRequest(ctx, invalidCategoryMessage())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.badRequest(ctx, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	created, err := c.service.Create(ctx.Request.Context(), entity.CreateExpenseData{
		Amount:      decimal.NewFromFloat(req.Amount),
		Category:    category,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to create expense")
		return
	}

	month := created.Date.Format("2006-01")

	remaining, err := c.service.RemainingBudget(ctx.Request.Context(), month, c.monthlyBudget)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to create expense")
		return
	}

	totals, err := c.service.CategoryTotals(ctx.Request.Context(), month)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to create expense")
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateExpenseResponse{
		Success:         true,
		Data:            dto.ToExpenseResponse(created),
		RemainingBudget: remaining.String(),
		CategoryTotals:  dto.ToCategoryTotals(totals),
		BudgetExceeded:  dto.BudgetExceeded(remaining),
	})
}

// Update handles PUT /expenses/:id requests. Fields are validated only
// when present, then merged into the stored record.
func (c *ExpenseController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		c.notFound(ctx)
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, "Invalid request body")
		return
	}

	var patch entity.UpdateExpenseData

	if req.Amount != nil {
		if *req.Amount <= 0 {
			c.badRequest(ctx, "Amount must be greater than 0")
			return
		}
		amount := decimal.NewFromFloat(*req.Amount)
		patch.Amount = &amount
	}

	if req.Category != nil {
		category := entity.Category(*req.Category)
		if !category.IsValid() {
			c.badRequest(ctx, invalidCategoryMessage())
			return
		}
		patch.Category = &category
	}

	if req.Date != nil {
		date, parseErr := time.Parse("2006-01-02", *req.Date)
		if parseErr != nil {
			c.badRequest(ctx, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	patch.Description = req.Description

	updated, err := c.service.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to update expense")
		return
	}

	ctx.JSON(http.StatusOK, dto.ExpenseSingleResponse{
		Success: true,
		Data:    dto.ToExpenseResponse(updated),
	})
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		c.notFound(ctx)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		c.handleServiceError(ctx, err, "Failed to delete expense")
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Expense deleted successfully",
	})
}

// MonthlyReport handles GET /expenses/reports/monthly/:month requests.
func (c *ExpenseController) MonthlyReport(ctx *gin.Context) {
	month := ctx.Param("month")
	if !monthPattern.MatchString(month) {
		c.badRequest(ctx, "Invalid month format. Use YYYY-MM")
		return
	}

	total, err := c.service.TotalForMonth(ctx.Request.Context(), month)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to generate monthly report")
		return
	}

	totals, err := c.service.CategoryTotals(ctx.Request.Context(), month)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to generate monthly report")
		return
	}

	remaining, err := c.service.RemainingBudget(ctx.Request.Context(), month, c.monthlyBudget)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to generate monthly report")
		return
	}

	ctx.JSON(http.StatusOK, dto.MonthlyReportResponse{
		Success: true,
		Data: dto.MonthlyReportData{
			Month:           month,
			TotalExpenses:   total.String(),
			CategoryTotals:  dto.ToCategoryTotals(totals),
			MonthlyBudget:   c.monthlyBudget.String(),
			RemainingBudget: remaining.String(),
			BudgetExceeded:  dto.BudgetExceeded(remaining),
		},
	})
}

// ByCategory handles GET /expenses/category/:category requests.
func (c *ExpenseController) ByCategory(ctx *gin.Context) {
	category := entity.Category(ctx.Param("category"))
	if !category.IsValid() {
		c.badRequest(ctx, invalidCategoryMessage())
		return
	}

	expenses, err := c.service.ByCategory(ctx.Request.Context(), category)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to fetch expenses by category")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// CategoryTotals handles GET /expenses/categories/totals requests.
// The month query parameter is optional; without it the totals cover the
// entire collection.
func (c *ExpenseController) CategoryTotals(ctx *gin.Context) {
	month := ctx.Query("month")
	if month != "" && !monthPattern.MatchString(month) {
		c.badRequest(ctx, "Invalid month format. Use YYYY-MM")
		return
	}

	totals, err := c.service.CategoryTotals(ctx.Request.Context(), month)
	if err != nil {
		c.handleServiceError(ctx, err, "Failed to fetch category totals")
		return
	}

	responseMonth := month
	if responseMonth == "" {
		responseMonth = "all-time"
	}

	ctx.JSON(http.StatusOK, dto.CategoryTotalsResponse{
		Success: true,
		Data:    dto.ToCategoryTotals(totals),
		Month:   responseMonth,
	})
}

// handleServiceError maps service errors to HTTP responses: the not-found
// sentinel becomes a 404, anything else a generic 500 without internal
// error detail.
func (c *ExpenseController) handleServiceError(ctx *gin.Context, err error, message string) {
	if errors.Is(err, domainerror.ErrExpenseNotFound) {
		c.notFound(ctx)
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}

func (c *ExpenseController) notFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
		Success: false,
		Message: "Expense not found",
	})
}

func (c *ExpenseController) badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}

func invalidCategoryMessage() string {
	categories := entity.Categories()
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}
	return "Invalid category. Must be one of: " + strings.Join(names, ", ")
}
