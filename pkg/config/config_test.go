package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "PORT", "HISTORY_BACKEND", "REDIS_ADDR", "CACHE_TTL", "LOAN_MAX_TERM", "ALLOWED_ORIGINS", "CACHE_MAX_ENTRIES"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.AppEnv != "dev" {
		t.Fatalf("AppEnv = %q, want dev", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.HistoryBackend != "postgres" {
		t.Fatalf("HistoryBackend = %q, want postgres", cfg.HistoryBackend)
	}
	if cfg.Redis.TTL != 24*time.Hour {
		t.Fatalf("Redis.TTL = %v, want 24h", cfg.Redis.TTL)
	}
	if cfg.CacheMaxEntries != 10_000 {
		t.Fatalf("CacheMaxEntries = %d, want 10000", cfg.CacheMaxEntries)
	}
	if cfg.Loan.MaxTermMonths != 600 {
		t.Fatalf("Loan.MaxTermMonths = %d, want 600", cfg.Loan.MaxTermMonths)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v, want 2 defaults", cfg.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("CACHE_MAX_ENTRIES", "250")
	t.Setenv("LOAN_MAX_PRINCIPAL", "50000")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example ")

	cfg := Load()

	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %q, want :9000", cfg.HTTPAddr)
	}
	if !cfg.IsProd() {
		t.Fatalf("expected prod")
	}
	if cfg.Redis.TTL != 15*time.Minute {
		t.Fatalf("Redis.TTL = %v, want 15m", cfg.Redis.TTL)
	}
	if cfg.CacheMaxEntries != 250 {
		t.Fatalf("CacheMaxEntries = %d, want 250", cfg.CacheMaxEntries)
	}
	if cfg.RateLimitCapacity != 5 {
		t.Fatalf("RateLimitCapacity = %d, want 5", cfg.RateLimitCapacity)
	}
	if cfg.Loan.MaxPrincipal != 50000 {
		t.Fatalf("Loan.MaxPrincipal = %v, want 50000", cfg.Loan.MaxPrincipal)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != want[0] || cfg.AllowedOrigins[1] != want[1] {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}
