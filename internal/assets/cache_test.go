package assets

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newMini(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	c, err := NewCache(ctx, mr.Addr(), 8, time.Minute, time.Second)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	c, _ := newMini(t)
	ctx := context.Background()

	a := Asset{ID: "a1", Name: "roads", URL: "https://cdn.example.com/a1.geojson"}
	if err := c.Put(ctx, "a1", a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := c.Get(ctx, "a1")
	if !ok || got != a {
		t.Fatalf("got %+v ok=%v", got, ok)
	}

	// second read is served from the LRU even if redis is flushed
	c2, mr := newMini(t)
	if err := c2.Put(ctx, "a2", a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	mr.FlushAll()
	if _, ok := c2.Get(ctx, "a2"); !ok {
		t.Fatal("LRU front should survive a redis flush")
	}
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := newMini(t)
	if _, ok := c.Get(context.Background(), "unknown"); ok {
		t.Fatal("expected miss")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	ctx := context.Background()
	c, err := NewCache(ctx, mr.Addr(), 1, 10*time.Second, time.Second)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := c.Put(ctx, "a1", Asset{ID: "a1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// push a1 out of the single-slot LRU, then expire redis
	if err := c.Put(ctx, "a2", Asset{ID: "a2"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	mr.FastForward(11 * time.Second)
	if _, ok := c.Get(ctx, "a1"); ok {
		t.Fatal("expected expiry")
	}
}

func TestCacheKey_SanitizedAndDistinct(t *testing.T) {
	k1 := cacheKey("ref one")
	k2 := cacheKey("ref_one")
	if k1 == k2 {
		t.Fatal("distinct refs must hash to distinct keys")
	}
	if strings.Contains(k1, " ") {
		t.Fatalf("key not sanitized: %q", k1)
	}
	if !strings.HasPrefix(k1, "asset:") {
		t.Fatalf("key %q", k1)
	}
}
