package notebook_test

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-planner/internal/notebook"
)

func TestLoaderFetchesOncePerKey(t *testing.T) {
	var calls int32
	loader := notebook.NewLoader(func(_ context.Context, key string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "value-" + key, nil
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		value, err := loader.Get(ctx, "a")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if value != "value-a" {
			t.Fatalf("unexpected value %q", value)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
}

func TestLoaderCoalescesConcurrentFetches(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	loader := notebook.NewLoader(func(_ context.Context, key int) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return key * 10, nil
	})

	ctx := context.Background()
	const waiters = 8
	var wg sync.WaitGroup
	results := make([]int, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			value, err := loader.Get(ctx, 7)
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			results[slot] = value
		}(i)
	}

	// Let every goroutine either start the fetch or attach to it.
	for atomic.LoadInt32(&calls) == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected concurrent gets to coalesce into 1 fetch, got %d", got)
	}
	for i, value := range results {
		if value != 70 {
			t.Fatalf("waiter %d: expected 70, got %d", i, value)
		}
	}
}

func TestLoaderDoesNotCacheFailures(t *testing.T) {
	var calls int32
	loader := notebook.NewLoader(func(_ context.Context, key string) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", errors.New("backend down")
		}
		return "recovered", nil
	})

	ctx := context.Background()
	if _, err := loader.Get(ctx, "k"); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	value, err := loader.Get(ctx, "k")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if value != "recovered" {
		t.Fatalf("unexpected value %q", value)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

func TestLoaderInvalidateForcesRefetch(t *testing.T) {
	var calls int32
	loader := notebook.NewLoader(func(_ context.Context, key string) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	})

	ctx := context.Background()
	first, _ := loader.Get(ctx, "k")
	loader.Invalidate("k")
	second, _ := loader.Get(ctx, "k")

	if first != 1 || second != 2 {
		t.Fatalf("expected fresh fetch after invalidate, got %d then %d", first, second)
	}
}

func TestLoaderInvalidateDuringInflightDropsStaleResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	loader := notebook.NewLoader(func(_ context.Context, key string) (int, error) {
		n := int(atomic.AddInt32(&calls, 1))
		if n == 1 {
			close(started)
			<-release
		}
		return n, nil
	})

	ctx := context.Background()
	done := make(chan int)
	go func() {
		value, _ := loader.Get(ctx, "k")
		done <- value
	}()

	<-started
	loader.Invalidate("k")
	close(release)

	if value := <-done; value != 1 {
		t.Fatalf("in-flight waiter should still see its own result, got %d", value)
	}

	// The invalidated result must not have been cached.
	if _, ok := loader.Peek("k"); ok {
		t.Fatal("stale result cached past invalidation")
	}
	value, err := loader.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != 2 {
		t.Fatalf("expected refetch after invalidation, got %d", value)
	}
}

func TestLoaderPeek(t *testing.T) {
	loader := notebook.NewLoader(func(_ context.Context, key string) (string, error) {
		return "v", nil
	})

	if _, ok := loader.Peek("k"); ok {
		t.Fatal("peek must not fetch")
	}
	if _, err := loader.Get(context.Background(), "k"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if value, ok := loader.Peek("k"); !ok || value != "v" {
		t.Fatalf("expected cached value, got %q ok=%v", value, ok)
	}
}
