package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 0)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "grid", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "grid:2026-10-19", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "grid" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
	if stats := store.Stats(); stats.Loads != 1 {
		t.Fatalf("expected one load, got %+v", stats)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 0)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("store down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to succeed, got %v %v", v, err)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, 0)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_BoundsEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, 2)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "a", 1)
	now = now.Add(time.Second)
	store.Set(context.Background(), "b", 2)
	now = now.Add(time.Second)
	store.Set(context.Background(), "c", 3)

	if _, ok := store.Get(context.Background(), "a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if stats := store.Stats(); stats.Entries != 2 {
		t.Fatalf("expected 2 entries, got %d", stats.Entries)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0, 0)
	store.Set(context.Background(), "search:sha", 1)
	store.Set(context.Background(), "search:xha", 2)
	store.Set(context.Background(), "grid:2026-10-19", 3)

	store.DeletePrefix(context.Background(), "search:")
	if stats := store.Stats(); stats.Entries != 1 {
		t.Fatalf("expected only grid entry left, got %d", stats.Entries)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
