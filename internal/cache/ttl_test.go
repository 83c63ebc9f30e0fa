package cache

import (
	"sync"
	"testing"
	"time"
)

func freeze(t *testing.T) *time.Time {
	t.Helper()
	base := time.Date(2023, 10, 31, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })
	return &base
}

func TestTTL_SetGetNoExpiry(t *testing.T) {
	c := NewTTL[string, int]()
	c.Set("a", 1, 0)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit with value 1, got ok=%v v=%v", ok, v)
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", c.Len())
	}
}

func TestTTL_Expiry(t *testing.T) {
	clock := freeze(t)
	c := NewTTL[string, string]()
	c.Set("k", "v", time.Minute)

	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	*clock = clock.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	if c.Len() != 0 {
		t.Fatalf("expected Len=0 after expiry, got %d", c.Len())
	}
	if n := c.PurgeExpired(); n != 1 {
		t.Fatalf("expected 1 purged entry, got %d", n)
	}
}

func TestTTL_Delete(t *testing.T) {
	clock := freeze(t)
	c := NewTTL[int, int]()
	c.Set(1, 10, 0)
	c.Set(2, 20, time.Second)

	if !c.Delete(1) {
		t.Fatalf("expected live entry to be deleted")
	}
	if c.Delete(1) {
		t.Fatalf("expected second delete to report false")
	}
	*clock = clock.Add(time.Hour)
	if c.Delete(2) {
		t.Fatalf("expected expired entry delete to report false")
	}
}

func TestTTL_ConcurrentAccess(t *testing.T) {
	c := NewTTL[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < 100; r++ {
				c.Set(i, r, 0)
				_, _ = c.Get(i)
			}
		}()
	}
	wg.Wait()
	if c.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", c.Len())
	}
}
