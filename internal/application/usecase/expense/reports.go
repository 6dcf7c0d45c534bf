package expense

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryTotals maps category labels to summed amounts. Only categories
// that actually appear in the selected records are present.
type CategoryTotals map[entity.Category]decimal.Decimal

// TotalForMonth sums all expense amounts with a date inside the given
// month ("YYYY-MM"). The month is resolved to the half-open range
// [month-01, nextMonth-01), so boundaries are exact across month lengths
// and the December rollover.
func (s *Service) TotalForMonth(ctx context.Context, month string) (decimal.Decimal, error) {
	key := monthTotalKey(month)

	var cached decimal.Decimal
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	start, end, err := MonthRange(month)
	if err != nil {
		return decimal.Zero, err
	}

	expenses, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query expenses for month %s: %w", month, err)
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}

	s.writeCache(ctx, key, total, s.ttl.Long)
	return total, nil
}

// CategoryTotals aggregates amounts per category. With an empty month the
// whole collection is aggregated; otherwise only records inside the
// month's half-open range count.
func (s *Service) CategoryTotals(ctx context.Context, month string) (CategoryTotals, error) {
	key := categoryTotalsKey(month)

	var cached CategoryTotals
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	var expenses []*entity.Expense
	var err error
	if month == "" {
		expenses, err = s.repo.FindAll(ctx)
	} else {
		start, end, rangeErr := MonthRange(month)
		if rangeErr != nil {
			return nil, rangeErr
		}
		expenses, err = s.repo.FindByDateRange(ctx, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for category totals: %w", err)
	}

	totals := make(CategoryTotals)
	for _, expense := range expenses {
		totals[expense.Category] = totals[expense.Category].Add(expense.Amount)
	}

	s.writeCache(ctx, key, totals, s.ttl.Medium)
	return totals, nil
}

// ByCategory returns the expenses of one category ordered by date descending.
func (s *Service) ByCategory(ctx context.Context, category entity.Category) ([]*entity.Expense, error) {
	key := categoryKey(category)

	var cached []*entity.Expense
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	expenses, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for category %s: %w", category, err)
	}

	s.writeCache(ctx, key, expenses, s.ttl.Medium)
	return expenses, nil
}

// RemainingBudget returns max(0, budget - TotalForMonth(month)). It never
// goes negative; a zero remainder is the exceedance signal.
func (s *Service) RemainingBudget(ctx context.Context, month string, budget decimal.Decimal) (decimal.Decimal, error) {
	total, err := s.TotalForMonth(ctx, month)
	if err != nil {
		return decimal.Zero, err
	}

	remaining := budget.Sub(total)
	if remaining.IsNegative() {
		return decimal.Zero, nil
	}
	return remaining, nil
}
