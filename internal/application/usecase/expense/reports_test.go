package expense

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestService_TotalForMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("sums only records inside the half-open month range", func(t *testing.T) {
		service, _, _ := newTestService()

		createExpense(t, service, 10, entity.CategoryFood, "2024-01-01")
		createExpense(t, service, 20, entity.CategoryFood, "2024-01-31")
		createExpense(t, service, 40, entity.CategoryFood, "2024-02-01")
		createExpense(t, service, 80, entity.CategoryFood, "2023-12-31")

		total, err := service.TotalForMonth(ctx, "2024-01")
		if err != nil {
			t.Fatalf("TotalForMonth returned error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected total 30, got %s", total)
		}
	})

	t.Run("december total excludes january records", func(t *testing.T) {
		service, _, _ := newTestService()

		createExpense(t, service, 15, entity.CategoryShopping, "2023-12-31")
		createExpense(t, service, 25, entity.CategoryShopping, "2024-01-01")

		total, err := service.TotalForMonth(ctx, "2023-12")
		if err != nil {
			t.Fatalf("TotalForMonth returned error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(15)) {
			t.Errorf("expected total 15, got %s", total)
		}
	})

	t.Run("empty month totals zero", func(t *testing.T) {
		service, _, _ := newTestService()

		total, err := service.TotalForMonth(ctx, "2024-06")
		if err != nil {
			t.Fatalf("TotalForMonth returned error: %v", err)
		}
		if !total.IsZero() {
			t.Errorf("expected zero total, got %s", total)
		}
	})

	t.Run("caches the total at the long tier", func(t *testing.T) {
		service, _, cache := newTestService()
		createExpense(t, service, 10, entity.CategoryFood, "2024-01-10")

		if _, err := service.TotalForMonth(ctx, "2024-01"); err != nil {
			t.Fatalf("TotalForMonth returned error: %v", err)
		}

		if !cache.has("total_month_2024-01") {
			t.Fatal("expected total_month_2024-01 to be cached")
		}
		if cache.ttls["total_month_2024-01"] != testTTL().Long {
			t.Errorf("expected long TTL, got %v", cache.ttls["total_month_2024-01"])
		}
	})

	t.Run("invalid month returns error", func(t *testing.T) {
		service, _, _ := newTestService()

		if _, err := service.TotalForMonth(ctx, "2024-13"); err == nil {
			t.Error("expected error for invalid month")
		}
	})
}

func TestService_CategoryTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates the whole collection without a month", func(t *testing.T) {
		service, _, _ := newTestService()

		createExpense(t, service, 10, entity.CategoryFood, "2024-01-10")
		createExpense(t, service, 20, entity.CategoryFood, "2024-05-10")
		createExpense(t, service, 35, entity.CategoryUtilities, "2023-11-02")

		totals, err := service.CategoryTotals(ctx, "")
		if err != nil {
			t.Fatalf("CategoryTotals returned error: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(totals))
		}
		if !totals[entity.CategoryFood].Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected Food total 30, got %s", totals[entity.CategoryFood])
		}
		if !totals[entity.CategoryUtilities].Equal(decimal.NewFromInt(35)) {
			t.Errorf("expected Utilities total 35, got %s", totals[entity.CategoryUtilities])
		}
	})

	t.Run("restricts to the month's half-open range", func(t *testing.T) {
		service, _, _ := newTestService()

		createExpense(t, service, 10, entity.CategoryFood, "2024-01-31")
		createExpense(t, service, 20, entity.CategoryFood, "2024-02-01")

		totals, err := service.CategoryTotals(ctx, "2024-01")
		if err != nil {
			t.Fatalf("CategoryTotals returned error: %v", err)
		}
		if !totals[entity.CategoryFood].Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected Food total 10, got %s", totals[entity.CategoryFood])
		}
	})

	t.Run("omits categories with no recorded expenses", func(t *testing.T) {
		service, _, _ := newTestService()

		createExpense(t, service, 10, entity.CategoryFood, "2024-01-10")

		totals, err := service.CategoryTotals(ctx, "")
		if err != nil {
			t.Fatalf("CategoryTotals returned error: %v", err)
		}
		if _, ok := totals[entity.CategoryShopping]; ok {
			t.Error("expected no zero-valued entry for Shopping")
		}
		if len(totals) != 1 {
			t.Errorf("expected 1 category, got %d", len(totals))
		}
	})

	t.Run("all-time and month totals use distinct cache keys", func(t *testing.T) {
		service, _, cache := newTestService()
		createExpense(t, service, 10, entity.CategoryFood, "2024-01-10")

		if _, err := service.CategoryTotals(ctx, ""); err != nil {
			t.Fatalf("CategoryTotals returned error: %v", err)
		}
		if _, err := service.CategoryTotals(ctx, "2024-01"); err != nil {
			t.Fatalf("CategoryTotals returned error: %v", err)
		}

		if !cache.has("category_totals_all") {
			t.Error("expected category_totals_all to be cached")
		}
		if !cache.has("category_totals_2024-01") {
			t.Error("expected category_totals_2024-01 to be cached")
		}
	})
}

func TestService_ByCategory(t *testing.T) {
	ctx := context.Background()
	service, _, cache := newTestService()

	createExpense(t, service, 10, entity.CategoryFood, "2024-01-10")
	createExpense(t, service, 20, entity.CategoryShopping, "2024-01-12")
	createExpense(t, service, 30, entity.CategoryFood, "2024-02-01")

	expenses, err := service.ByCategory(ctx, entity.CategoryFood)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 Food expenses, got %d", len(expenses))
	}
	if expenses[0].Date.Before(expenses[1].Date) {
		t.Error("expected date-descending order")
	}
	if !cache.has("expenses_category_Food") {
		t.Error("expected expenses_category_Food to be cached")
	}
}

func TestService_RemainingBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("returns budget minus total", func(t *testing.T) {
		service, _, _ := newTestService()
		createExpense(t, service, 40, entity.CategoryFood, "2024-01-10")

		remaining, err := service.RemainingBudget(ctx, "2024-01", decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("RemainingBudget returned error: %v", err)
		}
		if !remaining.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected remaining 60, got %s", remaining)
		}
	})

	t.Run("never goes negative", func(t *testing.T) {
		service, _, _ := newTestService()
		createExpense(t, service, 150, entity.CategoryShopping, "2024-01-10")

		remaining, err := service.RemainingBudget(ctx, "2024-01", decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("RemainingBudget returned error: %v", err)
		}
		if !remaining.IsZero() {
			t.Errorf("expected remaining 0, got %s", remaining)
		}
	})
}
