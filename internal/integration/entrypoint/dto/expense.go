// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description,omitempty"`
}

// UpdateExpenseRequest represents the request body for a partial expense
// update. Only present fields are validated and applied.
type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExpenseListResponse represents the response for expense listings.
type ExpenseListResponse struct {
	Success bool              `json:"success"`
	Data    []ExpenseResponse `json:"data"`
	Count   int               `json:"count"`
}

// ExpenseSingleResponse represents the response for a single expense.
type ExpenseSingleResponse struct {
	Success bool            `json:"success"`
	Data    ExpenseResponse `json:"data"`
}

// CreateExpenseResponse represents the response for expense creation,
// including the post-write budget state for the record's month.
type CreateExpenseResponse struct {
	Success         bool              `json:"success"`
	Data            ExpenseResponse   `json:"data"`
	RemainingBudget string            `json:"remainingBudget"`
	CategoryTotals  map[string]string `json:"categoryTotals"`
	BudgetExceeded  bool              `json:"budgetExceeded"`
}

// MonthlyReportData represents the payload of a monthly report.
type MonthlyReportData struct {
	Month           string            `json:"month"`
	TotalExpenses   string            `json:"totalExpenses"`
	CategoryTotals  map[string]string `json:"categoryTotals"`
	MonthlyBudget   string            `json:"monthlyBudget"`
	RemainingBudget string            `json:"remainingBudget"`
	BudgetExceeded  bool              `json:"budgetExceeded"`
}

// MonthlyReportResponse represents the response for a monthly report.
type MonthlyReportResponse struct {
	Success bool              `json:"success"`
	Data    MonthlyReportData `json:"data"`
}

// CategoryTotalsResponse represents the response for category totals.
type CategoryTotalsResponse struct {
	Success bool              `json:"success"`
	Data    map[string]string `json:"data"`
	Month   string            `json:"month"`
}

// MessageResponse represents a response carrying only a message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ToExpenseResponse converts an Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount.String(),
		Category:    string(e.Category),
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToExpenseListResponse converts a slice of expenses to a list response.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	data := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Success: true,
		Data:    data,
		Count:   len(data),
	}
}

// ToCategoryTotals converts service category totals to their wire form.
func ToCategoryTotals(totals expense.CategoryTotals) map[string]string {
	result := make(map[string]string, len(totals))
	for category, amount := range totals {
		result[string(category)] = amount.String()
	}
	return result
}

// BudgetExceeded reports whether the remaining budget signals exceedance.
func BudgetExceeded(remaining decimal.Decimal) bool {
	return remaining.LessThanOrEqual(decimal.Zero)
}
