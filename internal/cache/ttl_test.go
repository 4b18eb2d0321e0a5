package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock shared by a cache under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestGetReturnsFreshValueOnly(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, clock.Now)

	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Put("k", "v")

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Errorf("Get() = %q, %v, want v, true", v, ok)
	}

	// One nanosecond under the TTL: still fresh.
	clock.Advance(time.Minute - time.Nanosecond)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry should still be fresh just under the TTL")
	}

	// Exactly at the TTL boundary: stale.
	clock.Advance(time.Nanosecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry at exactly TTL age should be stale")
	}
}

func TestPutOverwrites(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Minute, clock.Now)

	c.Put("k", 1)
	clock.Advance(59 * time.Second)
	c.Put("k", 2)
	clock.Advance(59 * time.Second)

	// Second Put restarted the clock for the entry.
	if v, ok := c.Get("k"); !ok || v != 2 {
		t.Errorf("Get() = %d, %v, want 2, true", v, ok)
	}
}

func TestGetOrFetchFetchesOncePerWindow(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, clock.Now)

	var calls int
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "fetched", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrFetch(context.Background(), "k", fetch)
		if err != nil {
			t.Fatalf("GetOrFetch() error = %v", err)
		}
		if v != "fetched" {
			t.Fatalf("GetOrFetch() = %q, want fetched", v)
		}
	}
	if calls != 1 {
		t.Errorf("fetch calls within TTL window = %d, want 1", calls)
	}

	clock.Advance(time.Minute)
	if _, err := c.GetOrFetch(context.Background(), "k", fetch); err != nil {
		t.Fatalf("GetOrFetch() after expiry error = %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch calls after expiry = %d, want 2", calls)
	}
}

func TestGetOrFetchFailureLeavesEntryUntouched(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, clock.Now)

	c.Put("k", "old")
	clock.Advance(2 * time.Minute) // entry is now stale

	boom := errors.New("store unavailable")
	_, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("GetOrFetch() error = %v, want %v", err, boom)
	}

	// The stale entry must not have been dropped or replaced.
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// A later successful fetch replaces it as usual.
	v, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "new", nil
	})
	if err != nil || v != "new" {
		t.Errorf("GetOrFetch() = %q, %v, want new, nil", v, err)
	}
}

func TestGetOrFetchCoalescesConcurrentCallers(t *testing.T) {
	c := New[string](time.Minute, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const callers = 10
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			v, err := c.GetOrFetch(context.Background(), "k", fetch)
			if err != nil || v != "shared" {
				t.Errorf("GetOrFetch() = %q, %v, want shared, nil", v, err)
			}
		}()
	}

	started.Wait()
	// Give every goroutine time to join the in-flight fetch before it
	// is released.
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("underlying fetches = %d, want 1", got)
	}
}

func TestSweepDropsExpiredEntriesOnly(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Minute, clock.Now)

	c.Put("old-1", 1)
	c.Put("old-2", 2)
	clock.Advance(61 * time.Second)
	c.Put("fresh", 3)

	removed := c.Sweep()
	if removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() after sweep = %d, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive the sweep")
	}
}
