package cache

import (
	"testing"
	"time"
)

func TestTTL_GetSetExpire(t *testing.T) {
	c := New[int](time.Minute, 0)
	defer c.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected 1, got %v (%v)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("expected entry to expire")
	}
	if c.Len() != 1 {
		t.Errorf("expired entry should remain until swept, got %d", c.Len())
	}
	c.sweep()
	if c.Len() != 0 {
		t.Errorf("expected sweep to remove expired entry, got %d", c.Len())
	}
}

func TestTTL_NilIsMiss(t *testing.T) {
	var c *TTL[string]
	c.Set("a", "x")
	if _, ok := c.Get("a"); ok {
		t.Error("nil cache should always miss")
	}
}

func TestTTL_ClearAndClose(t *testing.T) {
	c := New[string](time.Hour, time.Millisecond)
	c.Set("a", "x")
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
	c.Close()
	c.Close()
}
