package service

import (
	"context"
	"log"
	"time"

	"github.com/ShridharSLS/Reaction-sub000/internal/repository"
)

// AuditWorker is a periodic background job that re-derives the taken-by
// aggregate for every video and repairs drift. The aggregate is maintained
// transactionally by the review operations; this catches rows touched
// outside the API (operator SQL, restores).
type AuditWorker struct {
	reviews  *repository.ReviewRepo
	interval time.Duration
	onRepair func(count int64) // metrics hook, may be nil
	stopCh   chan struct{}
}

// NewAuditWorker creates a worker that ticks every interval.
func NewAuditWorker(reviews *repository.ReviewRepo, interval time.Duration, onRepair func(count int64)) *AuditWorker {
	return &AuditWorker{
		reviews:  reviews,
		interval: interval,
		onRepair: onRepair,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic audit loop. It runs one tick immediately,
// then every interval.
func (w *AuditWorker) Start(ctx context.Context) {
	log.Printf("audit-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("audit-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("audit-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *AuditWorker) Stop() {
	close(w.stopCh)
}

// tick runs one audit cycle.
func (w *AuditWorker) tick(ctx context.Context) {
	start := time.Now()

	repaired, err := w.reviews.AuditTakenBy(ctx)
	if err != nil {
		log.Printf("audit-worker: audit error: %v", err)
		return
	}

	if repaired > 0 {
		// Repairs mean something wrote statuses without recomputing the
		// aggregate; worth an operator's attention.
		log.Printf("audit-worker: repaired taken-by on %d videos in %s", repaired, time.Since(start))
		if w.onRepair != nil {
			w.onRepair(repaired)
		}
	}
}
