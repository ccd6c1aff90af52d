package cache

import (
	"context"
	"testing"

	"food-resolver/internal/infrastructure/config"
	"food-resolver/internal/pkg/common"
)

func TestSearchKeyDeterministic(t *testing.T) {
	a := searchKey("珍珠奶茶", "zh-TW", 8)
	b := searchKey("珍珠奶茶", "zh-TW", 8)
	if a != b {
		t.Errorf("same inputs must produce the same key: %q vs %q", a, b)
	}
}

func TestSearchKeyDistinguishesInputs(t *testing.T) {
	base := searchKey("珍珠奶茶", "zh-TW", 8)

	if got := searchKey("紅茶", "zh-TW", 8); got == base {
		t.Error("different queries must not collide")
	}
	if got := searchKey("珍珠奶茶", "en", 8); got == base {
		t.Error("different langs must not collide")
	}
	if got := searchKey("珍珠奶茶", "zh-TW", 5); got == base {
		t.Error("different limits must not collide")
	}
}

func TestDisabledCacheIsInert(t *testing.T) {
	svc, err := NewService(&config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("disabled cache must not fail to build: %v", err)
	}

	if _, err := svc.GetSearch(context.Background(), "珍珠奶茶", "zh-TW", 8); err != common.ErrCacheDisabled {
		t.Errorf("disabled cache get should report ErrCacheDisabled, got %v", err)
	}
	if err := svc.SetSearch(context.Background(), "珍珠奶茶", "zh-TW", 8, nil); err != nil {
		t.Errorf("disabled cache set should be a no-op, got %v", err)
	}
}
