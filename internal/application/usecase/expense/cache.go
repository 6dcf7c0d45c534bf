package expense

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Cache key layout. Aggregate and listing keys share a small set of
// prefixes so a mutation can invalidate them by enumeration without
// knowing which months or categories are currently cached.
const (
	keyAllExpenses          = "all_expenses"
	keyPrefixExpense        = "expense_"
	keyPrefixCategory       = "expenses_category_"
	keyPrefixMonthTotal     = "total_month_"
	keyPrefixCategoryTotals = "category_totals_"
)

// aggregateKeyPrefixes are the key classes whose value can change on any
// mutation. Per-id keys are deliberately not in this list.
var aggregateKeyPrefixes = []string{
	keyAllExpenses,
	keyPrefixCategory,
	keyPrefixMonthTotal,
	keyPrefixCategoryTotals,
}

func expenseKey(id uuid.UUID) string {
	return keyPrefixExpense + id.String()
}

func categoryKey(category entity.Category) string {
	return keyPrefixCategory + string(category)
}

func monthTotalKey(month string) string {
	return keyPrefixMonthTotal + month
}

func categoryTotalsKey(month string) string {
	if month == "" {
		month = "all"
	}
	return keyPrefixCategoryTotals + month
}

// readCache loads and decodes a cached JSON value into out. An entry that
// no longer decodes is dropped and treated as a miss.
func (s *Service) readCache(ctx context.Context, key string, out any) bool {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		s.cache.Delete(ctx, key)
		return false
	}
	return true
}

// writeCache stores a JSON-encoded value under key. Best-effort: encode
// or store failures only cost a future cache miss.
func (s *Service) writeCache(ctx context.Context, key string, value any, ttl time.Duration) {
	encoded, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to encode cache value", "key", key, "error", err)
		return
	}
	s.cache.Set(ctx, key, string(encoded), ttl)
}

// invalidateAggregates deletes every cache entry whose key denotes an
// aggregate or listing. The service cannot cheaply know which month or
// category keys exist, so it enumerates all current keys and matches the
// aggregate prefixes; over-invalidation only costs a cache miss.
func (s *Service) invalidateAggregates(ctx context.Context) {
	for _, key := range s.cache.Keys(ctx, "*") {
		for _, prefix := range aggregateKeyPrefixes {
			if strings.HasPrefix(key, prefix) {
				s.cache.Delete(ctx, key)
				break
			}
		}
	}
}

// invalidateExpense deletes the per-id entry for one record in addition
// to the aggregate/listing entries.
func (s *Service) invalidateExpense(ctx context.Context, id uuid.UUID) {
	s.cache.Delete(ctx, expenseKey(id))
	s.invalidateAggregates(ctx)
}
