package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/scheduler-api/internal/repository"
	"github.com/clinicdesk/scheduler-api/internal/service/scheduler"
	"github.com/clinicdesk/scheduler-api/pkg/metrics"
)

// SnapshotWorker periodically flushes the directory's collections
// through the persistence gateway. The directory is the source of
// truth between snapshots; a crash loses at most one interval.
type SnapshotWorker struct {
	scheduler *scheduler.Service
	store     repository.Store
	interval  time.Duration
	metrics   *metrics.Metrics
}

func NewSnapshotWorker(s *scheduler.Service, store repository.Store, interval time.Duration, m *metrics.Metrics) *SnapshotWorker {
	return &SnapshotWorker{
		scheduler: s,
		store:     store,
		interval:  interval,
		metrics:   m,
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Snapshot(ctx); err != nil {
				log.Error().Err(err).Msg("periodic snapshot failed")
			}
		}
	}
}

// Snapshot writes all three collections. Partial failure leaves the
// remaining files from the previous snapshot in place.
func (w *SnapshotWorker) Snapshot(ctx context.Context) error {
	start := time.Now()
	patients, doctors, appointments := w.scheduler.Snapshot()

	var firstErr error
	if err := w.store.SavePatients(ctx, patients); err != nil {
		firstErr = fmt.Errorf("failed to save patients: %w", err)
	}
	if err := w.store.SaveDoctors(ctx, doctors); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to save doctors: %w", err)
	}
	if err := w.store.SaveAppointments(ctx, appointments); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to save appointments: %w", err)
	}

	if w.metrics != nil {
		w.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
		if firstErr != nil {
			w.metrics.SnapshotFailures.Inc()
		}
	}
	return firstErr
}
