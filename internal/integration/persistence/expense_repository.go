// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface,
// scoped to a single user's expense collection.
type expenseRepository struct {
	db     *gorm.DB
	userID string
}

// NewExpenseRepository creates a new expense repository instance scoped
// to the given user.
func NewExpenseRepository(db *gorm.DB, userID string) adapter.ExpenseRepository {
	return &expenseRepository{
		db:     db,
		userID: userID,
	}
}

// Insert stores a new expense and returns the generated id.
func (r *expenseRepository) Insert(ctx context.Context, expense *entity.Expense) (uuid.UUID, error) {
	expenseModel := model.ExpenseFromEntity(r.userID, expense)
	if expenseModel.ID == uuid.Nil {
		expenseModel.ID = uuid.New()
	}

	result := r.db.WithContext(ctx).Create(expenseModel)
	if result.Error != nil {
		return uuid.Nil, result.Error
	}
	return expenseModel.ID, nil
}

// FindByID retrieves an expense by its id.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, r.userID).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// Update persists the full state of an existing expense.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(r.userID, expense)

	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ? AND user_id = ?", expense.ID, r.userID).
		Select("amount", "category", "date", "description", "updated_at").
		Updates(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense by its id.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, r.userID).
		Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// FindAll retrieves all expenses for the user ordered by date descending.
func (r *expenseRepository) FindAll(ctx context.Context) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", r.userID).
		Order("date DESC, created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(expenseModels), nil
}

// FindByDateRange retrieves expenses with date in [start, end).
func (r *expenseRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", r.userID, start, end).
		Order("date DESC, created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(expenseModels), nil
}

// FindByCategory retrieves expenses for one category ordered by date descending.
func (r *expenseRepository) FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", r.userID, string(category)).
		Order("date DESC, created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(expenseModels), nil
}

func toEntities(expenseModels []model.ExpenseModel) []*entity.Expense {
	expenses := make([]*entity.Expense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}
	return expenses
}
