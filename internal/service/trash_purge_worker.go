package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const purgeRunTimeout = 5 * time.Minute

// TrashPurgeWorker permanently deletes expired trash on a fixed interval.
type TrashPurgeWorker struct {
	trash    TrashService
	interval time.Duration
	log      *zap.Logger
}

// NewTrashPurgeWorker creates a new TrashPurgeWorker.
func NewTrashPurgeWorker(trash TrashService, interval time.Duration, log *zap.Logger) *TrashPurgeWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TrashPurgeWorker{trash: trash, interval: interval, log: log}
}

// Start runs one purge immediately and then one per interval until ctx is
// canceled. A run in progress finishes before Start returns.
func (w *TrashPurgeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("trash purge worker started", zap.Duration("interval", w.interval))
	w.RunOnce()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("trash purge worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single purge pass.
func (w *TrashPurgeWorker) RunOnce() {
	// Use a fresh context so a pass is not cut short by shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), purgeRunTimeout)
	defer cancel()

	n, err := w.trash.PurgeExpired(ctx)
	if err != nil {
		w.log.Error("purging expired trash", zap.Error(err))
		return
	}
	if n > 0 {
		w.log.Info("purged expired trash", zap.Int("count", n))
	}
}
