// Package expense contains the expense aggregation service, the owner of
// all expense business logic: CRUD, cached reads, and derived monthly and
// category aggregates.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TTLTiers holds the cache TTL per key class.
type TTLTiers struct {
	Short    time.Duration
	Medium   time.Duration
	Long     time.Duration
	Extended time.Duration
}

// Service implements the expense aggregation logic on top of an injected
// repository and cache. The cache is strictly a re-derivable projection of
// the repository: every read path works with the cache empty or lost.
type Service struct {
	repo  adapter.ExpenseRepository
	cache adapter.Cache
	ttl   TTLTiers
	now   func() time.Time
}

// NewService creates a new expense Service instance.
func NewService(repo adapter.ExpenseRepository, cache adapter.Cache, ttl TTLTiers) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create stores a new expense. Both timestamps are stamped with the same
// instant, so CreatedAt == UpdatedAt until the first mutation. Input is
// assumed pre-validated by the HTTP surface.
func (s *Service) Create(ctx context.Context, data entity.CreateExpenseData) (*entity.Expense, error) {
	now := s.now().UTC()

	expense := &entity.Expense{
		Amount:      data.Amount,
		Category:    data.Category,
		Date:        data.Date,
		Description: data.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Insert(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}
	expense.ID = id

	// A new record can change totals, category sums and listings.
	s.invalidateAggregates(ctx)

	return expense, nil
}

// GetAll returns every expense ordered by date descending, cache-first.
func (s *Service) GetAll(ctx context.Context) ([]*entity.Expense, error) {
	var cached []*entity.Expense
	if s.readCache(ctx, keyAllExpenses, &cached) {
		return cached, nil
	}

	expenses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	s.writeCache(ctx, keyAllExpenses, expenses, s.ttl.Medium)
	return expenses, nil
}

// GetByID returns one expense by id, cache-first. Returns the domain
// not-found sentinel when the id does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	key := expenseKey(id)

	var cached entity.Expense
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, key, expense, s.ttl.Medium)
	return expense, nil
}

// Update merges the patch into the stored record, stamps UpdatedAt and
// persists. The returned entity is re-read from the store so it reflects
// exactly what was persisted, not the caller's partial patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch entity.UpdateExpenseData) (*entity.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(expense)
	expense.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.invalidateExpense(ctx, id)

	fresh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// Delete removes an expense. Returns the domain not-found sentinel when
// the id does not exist; the store is left unchanged in that case.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateExpense(ctx, id)
	return nil
}
