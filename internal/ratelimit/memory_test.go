package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreBlocksAfterLimit(t *testing.T) {
	store := NewMemoryStore(3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		decision, err := store.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if i <= 3 && !decision.Allowed {
			t.Errorf("request %d should be allowed", i)
		}
		if i > 3 {
			if decision.Allowed {
				t.Errorf("request %d should be blocked", i)
			}
			if decision.RetryAfter <= 0 {
				t.Errorf("request %d: RetryAfter = %v, want positive", i, decision.RetryAfter)
			}
		}
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(1, time.Minute)
	ctx := context.Background()

	if d, _ := store.Allow(ctx, "10.0.0.1"); !d.Allowed {
		t.Fatal("first request for first key should pass")
	}
	if d, _ := store.Allow(ctx, "10.0.0.1"); d.Allowed {
		t.Fatal("second request for first key should be blocked")
	}
	if d, _ := store.Allow(ctx, "10.0.0.2"); !d.Allowed {
		t.Fatal("other client must have its own quota")
	}
}

func TestMemoryStoreRefillsOverTime(t *testing.T) {
	store := NewMemoryStore(2, 100*time.Millisecond)
	ctx := context.Background()

	store.Allow(ctx, "10.0.0.1")
	store.Allow(ctx, "10.0.0.1")
	if d, _ := store.Allow(ctx, "10.0.0.1"); d.Allowed {
		t.Fatal("quota should be exhausted")
	}

	time.Sleep(120 * time.Millisecond)

	if d, _ := store.Allow(ctx, "10.0.0.1"); !d.Allowed {
		t.Fatal("quota should have refilled after the window")
	}
}

func TestMemoryStoreEvictsIdleClients(t *testing.T) {
	store := NewMemoryStore(3, 10*time.Millisecond)
	ctx := context.Background()

	store.Allow(ctx, "10.0.0.1")
	time.Sleep(50 * time.Millisecond)
	// Touching another key triggers the sweep
	store.Allow(ctx, "10.0.0.2")

	store.mu.Lock()
	_, stale := store.clients["10.0.0.1"]
	store.mu.Unlock()
	if stale {
		t.Error("idle client entry should have been evicted")
	}
}
