package pricecache

import (
	"sync"
	"testing"
	"time"

	"github.com/tint-us/lm-api/internal/models"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 5, 12, 2, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func payloadAt(t time.Time) *models.PricePayload {
	return models.NewPricePayload(models.PricePayloadParams{SourceURL: "https://example.test", FetchedAt: t})
}

// ========================================
// GetFresh Tests
// ========================================

func TestGetFresh_Empty(t *testing.T) {
	c := New()
	if p, ok := c.GetFresh(time.Hour); ok || p != nil {
		t.Errorf("GetFresh() = %v, %v; want nil, false", p, ok)
	}
}

func TestGetFresh_WithinAndBeyondTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)
	p := payloadAt(clock.Now())
	c.Set(p)

	tests := []struct {
		name    string
		advance time.Duration
		wantOK  bool
	}{
		{"immediately", 0, true},
		{"just inside", 299 * time.Second, true},
		{"exactly at ttl", time.Second, true},
		{"past ttl", time.Nanosecond, false},
	}

	for _, tt := range tests {
		clock.Advance(tt.advance)
		got, ok := c.GetFresh(300 * time.Second)
		if ok != tt.wantOK {
			t.Fatalf("%s: GetFresh() ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
		if ok && got != p {
			t.Errorf("%s: GetFresh() returned a different payload", tt.name)
		}
	}
}

func TestGetFresh_ZeroTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)
	c.Set(payloadAt(clock.Now()))

	if _, ok := c.GetFresh(0); !ok {
		t.Error("GetFresh(0) at the same instant should hit")
	}
	clock.Advance(time.Millisecond)
	if _, ok := c.GetFresh(0); ok {
		t.Error("GetFresh(0) after any elapsed time should miss")
	}
}

// ========================================
// Set Tests
// ========================================

func TestSet_ReplacesAndRestartsTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	first := payloadAt(clock.Now())
	c.Set(first)

	clock.Advance(10 * time.Minute)
	second := payloadAt(clock.Now())
	if !c.Set(second) {
		t.Fatal("Set() of newer payload = false, want true")
	}

	got, ok := c.GetFresh(time.Minute)
	if !ok || got != second {
		t.Errorf("GetFresh() = %v, %v; want the second payload", got, ok)
	}
}

func TestSet_RejectsOlderPayload(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	older := payloadAt(clock.Now())
	newer := payloadAt(clock.Now().Add(time.Second))

	c.Set(newer)
	if c.Set(older) {
		t.Error("Set() of older payload = true, want false")
	}

	got, _ := c.GetFresh(time.Hour)
	if got != newer {
		t.Error("older payload replaced the newer one")
	}
}

func TestSet_Nil(t *testing.T) {
	c := New()
	if c.Set(nil) {
		t.Error("Set(nil) = true, want false")
	}
	if _, ok := c.Age(); ok {
		t.Error("Age() reports a payload after Set(nil)")
	}
}

// ========================================
// Age Tests
// ========================================

func TestAge(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	if _, ok := c.Age(); ok {
		t.Error("Age() on empty cache should report false")
	}

	c.Set(payloadAt(clock.Now()))
	clock.Advance(42 * time.Second)

	age, ok := c.Age()
	if !ok || age != 42*time.Second {
		t.Errorf("Age() = %v, %v; want 42s, true", age, ok)
	}
}

// ========================================
// Concurrency Tests
// ========================================

func TestConcurrentSetKeepsNewest(t *testing.T) {
	base := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(payloadAt(base.Add(time.Duration(i) * time.Second)))
			c.GetFresh(time.Hour)
		}(i)
	}
	wg.Wait()

	got, ok := c.GetFresh(time.Hour)
	if !ok {
		t.Fatal("GetFresh() missed after concurrent sets")
	}
	if want := base.Add(49 * time.Second); !got.FetchedAt.Equal(want) {
		t.Errorf("FetchedAt = %v, want newest %v", got.FetchedAt, want)
	}
}
