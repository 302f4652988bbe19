package service

import (
	"context"
	"testing"
)

func TestCacheWorker_FinalFlushDrainsPending(t *testing.T) {
	w := NewCacheWorker(nil, NewCacheService(""))
	w.mu.Lock()
	w.pending[1] = struct{}{}
	w.pending[2] = struct{}{}
	w.mu.Unlock()

	// A cancelled context must still run one bounded flush before exit.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.flushLoop(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) != 0 {
		t.Errorf("pending = %d entries after shutdown flush, want 0", len(w.pending))
	}
}

func TestCacheWorker_FlushSkipsEmptySet(t *testing.T) {
	w := NewCacheWorker(nil, NewCacheService(""))
	w.flush(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) != 0 {
		t.Errorf("pending = %d entries, want 0", len(w.pending))
	}
}
