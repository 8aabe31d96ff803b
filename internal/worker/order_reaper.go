package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// OrderReaper exposes the subset of application functionality required by the
// reaper.
type OrderReaper interface {
	ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// UnpaidOrderReaper periodically cancels online orders still awaiting payment
// past their time-to-live, restoring their reserved stock. It covers checkout
// sessions whose expiry webhook never arrives.
type UnpaidOrderReaper struct {
	facade       OrderReaper
	pollInterval time.Duration
	ttl          time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewUnpaidOrderReaper constructs the reaper. Sweepers run concurrently; the
// reap query skips rows locked by a sibling, so they never contend.
func NewUnpaidOrderReaper(facade OrderReaper, pollInterval, ttl time.Duration, batchSize, workers int, logger *slog.Logger) *UnpaidOrderReaper {
	if batchSize <= 0 {
		batchSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &UnpaidOrderReaper{
		facade:       facade,
		pollInterval: pollInterval,
		ttl:          ttl,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background sweeping.
func (r *UnpaidOrderReaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.loop(runCtx)
	}
}

// Stop waits for the current sweep to finish.
func (r *UnpaidOrderReaper) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *UnpaidOrderReaper) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *UnpaidOrderReaper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.ttl)
	for {
		reaped, err := r.facade.ReapUnpaid(ctx, cutoff, r.batchSize)
		if err != nil {
			r.logger.Error("unpaid order sweep failed", slog.String("error", err.Error()))
			return
		}
		if reaped > 0 {
			r.logger.Info("unpaid orders reaped", slog.Int("count", reaped))
		}
		// A full batch means more may be waiting.
		if reaped < r.batchSize {
			return
		}
	}
}
