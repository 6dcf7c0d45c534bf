// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
// Implementations are scoped to a single user's expense collection.
type ExpenseRepository interface {
	// Insert stores a new expense and returns the generated id.
	Insert(ctx context.Context, expense *entity.Expense) (uuid.UUID, error)

	// FindByID retrieves an expense by its id.
	// Returns domain ErrExpenseNotFound when the id does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// Update persists the full state of an existing expense.
	// Returns domain ErrExpenseNotFound when the id does not exist.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense by its id.
	// Returns domain ErrExpenseNotFound when the id does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAll retrieves all expenses ordered by date descending.
	FindAll(ctx context.Context) ([]*entity.Expense, error)

	// FindByDateRange retrieves expenses with date in [start, end),
	// start inclusive, end exclusive.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Expense, error)

	// FindByCategory retrieves expenses for one category ordered by date descending.
	FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Expense, error)
}
