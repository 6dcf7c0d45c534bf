package cache

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

func newTestCache(t *testing.T) (adapter.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client), mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if ok := cache.Set(ctx, "expense_1", `{"amount":"50"}`, time.Minute); !ok {
		t.Fatal("expected Set to succeed")
	}

	value, ok := cache.Get(ctx, "expense_1")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if value != `{"amount":"50"}` {
		t.Errorf("unexpected value: %s", value)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	if _, ok := cache.Get(context.Background(), "missing"); ok {
		t.Error("expected a miss for an absent key")
	}
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "total_month_2024-01", "30", 2*time.Hour)

	if _, ok := cache.Get(ctx, "total_month_2024-01"); !ok {
		t.Fatal("expected a hit before expiry")
	}

	mr.FastForward(2*time.Hour + time.Second)

	if _, ok := cache.Get(ctx, "total_month_2024-01"); ok {
		t.Error("expected a miss after TTL expiry")
	}
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "all_expenses", "[]", time.Minute)
	cache.Set(ctx, "expense_1", "{}", time.Minute)

	if ok := cache.Delete(ctx, "all_expenses", "expense_1"); !ok {
		t.Fatal("expected Delete to succeed")
	}
	if _, ok := cache.Get(ctx, "all_expenses"); ok {
		t.Error("expected all_expenses to be gone")
	}
	if _, ok := cache.Get(ctx, "expense_1"); ok {
		t.Error("expected expense_1 to be gone")
	}
}

func TestRedisCache_DeleteNoKeys(t *testing.T) {
	cache, _ := newTestCache(t)

	if ok := cache.Delete(context.Background()); !ok {
		t.Error("expected Delete with no keys to be a no-op success")
	}
}

func TestRedisCache_Keys(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "total_month_2024-01", "10", time.Minute)
	cache.Set(ctx, "total_month_2024-02", "20", time.Minute)
	cache.Set(ctx, "all_expenses", "[]", time.Minute)

	keys := cache.Keys(ctx, "total_month_*")
	sort.Strings(keys)

	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
	if keys[0] != "total_month_2024-01" || keys[1] != "total_month_2024-02" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestRedisCache_FlushAll(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "all_expenses", "[]", time.Minute)

	if ok := cache.FlushAll(ctx); !ok {
		t.Fatal("expected FlushAll to succeed")
	}
	if keys := cache.Keys(ctx, "*"); len(keys) != 0 {
		t.Errorf("expected no keys after flush, got %v", keys)
	}
}

func TestRedisCache_FailuresDegradeToMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "all_expenses", "[]", time.Minute)
	mr.Close()

	if _, ok := cache.Get(ctx, "all_expenses"); ok {
		t.Error("expected Get against a dead backend to miss")
	}
	if ok := cache.Set(ctx, "expense_1", "{}", time.Minute); ok {
		t.Error("expected Set against a dead backend to report failure")
	}
	if ok := cache.Delete(ctx, "all_expenses"); ok {
		t.Error("expected Delete against a dead backend to report failure")
	}
	if keys := cache.Keys(ctx, "*"); keys != nil {
		t.Errorf("expected no keys from a dead backend, got %v", keys)
	}
	if ok := cache.FlushAll(ctx); ok {
		t.Error("expected FlushAll against a dead backend to report failure")
	}
}
