package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
}

func TestMemoryCacheRoundtrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	in := place{Name: "London", Lat: 51.5074}
	if err := mc.Set(ctx, "k", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out place
	if err := mc.Get(ctx, "k", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out place
	err := mc.Get(context.Background(), "absent", &out)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var out string
	if err := mc.Get(ctx, "k", &out); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	_ = mc.Set(ctx, "b", "2", time.Minute)

	// Touch "a" so "b" becomes the eviction candidate.
	time.Sleep(time.Millisecond)
	var s string
	_ = mc.Get(ctx, "a", &s)
	time.Sleep(time.Millisecond)

	_ = mc.Set(ctx, "c", "3", time.Minute)

	if ok, _ := mc.Exists(ctx, "b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if ok, _ := mc.Exists(ctx, "a"); !ok {
		t.Fatalf("expected a to survive")
	}
}

func TestNormalizedKeyStability(t *testing.T) {
	a := NormalizedKey("geocode", "  London, UK ")
	b := NormalizedKey("geocode", "london, uk")
	if a != b {
		t.Fatalf("expected normalized keys to match: %s vs %s", a, b)
	}
}
