package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CacheWorker listens for PostgreSQL NOTIFY on the 'review_changes' channel
// and batches cache invalidations. Every review transaction fires a notify;
// if fifty transitions hit video X inside one window, the key is dropped
// once. The aggregate itself is always recomputed inside the triggering
// transaction — this worker only keeps the read cache honest for writes
// that bypass the API services (operator SQL, seeding backfills).
type CacheWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[int64]struct{} // video IDs waiting for invalidation
}

// NewCacheWorker creates a cache invalidation worker.
func NewCacheWorker(pool *pgxpool.Pool, cache *CacheService) *CacheWorker {
	return &CacheWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[int64]struct{}),
	}
}

// Start begins listening for review_changes notifications and processing
// batches. Blocks until ctx is cancelled.
func (w *CacheWorker) Start(ctx context.Context) {
	log.Printf("cache-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("cache-worker: stopping (context cancelled)")
				return
			}
			log.Printf("cache-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("cache-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on review_changes,
// and collects notifications into the pending set.
func (w *CacheWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN review_changes")
	if err != nil {
		return err
	}
	log.Println("cache-worker: listening on review_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *CacheWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush, bounded so shutdown cannot hang on Redis.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(flushCtx)
			cancel()
			return
		}
	}
}

// flush drains the pending set and drops each video's cache key.
func (w *CacheWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[int64]struct{})
	w.mu.Unlock()

	invalidated := 0
	for videoID := range batch {
		if err := w.cache.InvalidateVideo(ctx, videoID); err != nil {
			log.Printf("cache-worker: invalidate error for %d: %v", videoID, err)
			continue
		}
		invalidated++
	}

	if invalidated > 0 {
		log.Printf("cache-worker: batch complete, %d videos invalidated (from %d notifications)",
			invalidated, len(batch))
	}
}
