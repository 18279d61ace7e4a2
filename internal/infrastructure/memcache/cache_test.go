package memcache

import (
	"context"
	"testing"
	"time"
)

func TestGet_MissingKey(t *testing.T) {
	c := New()
	_, ok, err := c.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for an unknown key")
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || string(b) != "v" {
		t.Fatalf("unexpected value: %q ok=%v", b, ok)
	}
}

func TestGet_ExpiredKeyIsIndistinguishableFromAbsent(t *testing.T) {
	c := New()
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(61 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("expired read must not error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss past expiry")
	}
	if _, present := c.store["k"]; present {
		t.Fatal("expected lazy eviction of the expired entry")
	}
}

func TestSet_ZeroTTLNeverExpires(t *testing.T) {
	c := New()
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current = current.Add(24 * time.Hour)

	_, ok, _ := c.Get(ctx, "k")
	if !ok {
		t.Fatal("a zero-TTL entry must not expire")
	}
}

func TestDelete_AbsentKeyIsNoError(t *testing.T) {
	c := New()
	if err := c.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShutdown_DropsAllEntries(t *testing.T) {
	c := New()
	ctx := context.Background()

	if !c.SupportsShutdown() {
		t.Fatal("in-memory cache should report shutdown support")
	}
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected an empty cache after shutdown")
	}
}
