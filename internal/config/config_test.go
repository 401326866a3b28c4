package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PAGE_SIZE", "MAX_COMPARE_SIZE", "COMPARE_STORE", "ALLOWED_ORIGINS", "CLIENT_TOKEN_TTL_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.MaxCompareSize != 3 {
		t.Errorf("MaxCompareSize = %d, want 3", cfg.MaxCompareSize)
	}
	if cfg.CompareStore != CompareStoreRedis {
		t.Errorf("CompareStore = %q, want %q", cfg.CompareStore, CompareStoreRedis)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil", cfg.AllowedOrigins)
	}
	if cfg.ClientTokenTTL != 365*24*time.Hour {
		t.Errorf("ClientTokenTTL = %v", cfg.ClientTokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("MAX_COMPARE_SIZE", "not-a-number")
	t.Setenv("COMPARE_STORE", "Memory")
	t.Setenv("ALLOWED_ORIGINS", " https://a.kz , ,https://b.kz")

	cfg := Load()
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.MaxCompareSize != 3 {
		t.Errorf("MaxCompareSize = %d, want fallback 3", cfg.MaxCompareSize)
	}
	if cfg.CompareStore != CompareStoreMemory {
		t.Errorf("CompareStore = %q, want %q", cfg.CompareStore, CompareStoreMemory)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.kz" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKey.CompareSetKey("abc"); got != "compare:abc" {
		t.Errorf("CompareSetKey = %q", got)
	}
	if got := CacheKey.CompareUpdatesChannel("abc"); got != "compare:abc:updates" {
		t.Errorf("CompareUpdatesChannel = %q", got)
	}
}
