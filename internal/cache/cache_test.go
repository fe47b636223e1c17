package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loancalc/internal/amortization"
)

func TestKey_DistinguishesInputs(t *testing.T) {
	a := Key(amortization.Input{Principal: 10000, AnnualRatePercent: 6, TermPeriods: 12})
	b := Key(amortization.Input{Principal: 10000, AnnualRatePercent: 6.0000001, TermPeriods: 12})
	c := Key(amortization.Input{Principal: 10000, AnnualRatePercent: 6, TermPeriods: 12})

	if a == b {
		t.Fatalf("expected different keys, both %q", a)
	}
	if a != c {
		t.Fatalf("expected identical keys, got %q and %q", a, c)
	}
	if a != "amortization:v1:10000:6:12" {
		t.Fatalf("unexpected key format %q", a)
	}
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0, time.Hour)

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss")
	}
	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := m.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("expected hit with v, got %q %v", got, ok)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", m.Len())
	}
}

func TestMemory_EvictsBeyondSize(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(100, time.Hour)

	for i := 0; i < 1000; i++ {
		in := amortization.Input{Principal: float64(1000 + i), AnnualRatePercent: 5, TermPeriods: 12}
		if err := m.Set(ctx, Key(in), "report"); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if m.Len() != 100 {
		t.Fatalf("expected 100 entries, got %d", m.Len())
	}

	oldest := Key(amortization.Input{Principal: 1000, AnnualRatePercent: 5, TermPeriods: 12})
	if _, ok := m.Get(ctx, oldest); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	newest := Key(amortization.Input{Principal: 1999, AnnualRatePercent: 5, TermPeriods: 12})
	if _, ok := m.Get(ctx, newest); !ok {
		t.Fatalf("expected newest entry to be kept")
	}
}

func TestMemory_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10, 20*time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := m.Set(ctx, fmt.Sprintf("k%d", i), "v"); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if _, ok := m.Get(ctx, "k0"); !ok {
		t.Fatalf("expected hit before ttl")
	}

	time.Sleep(60 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if _, ok := m.Get(ctx, fmt.Sprintf("k%d", i)); ok {
			t.Fatalf("expected k%d to expire", i)
		}
	}
}

func TestMemory_DefaultSize(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0, 0)

	for i := 0; i < DefaultMemoryEntries+10; i++ {
		_ = m.Set(ctx, fmt.Sprintf("k%d", i), "v")
	}
	if m.Len() != DefaultMemoryEntries {
		t.Fatalf("expected %d entries, got %d", DefaultMemoryEntries, m.Len())
	}
}
