package worker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"bethouse/models"
	"bethouse/service"
)

// generatedBySource marks scheduler-produced snapshots in the store
const generatedBySource = "scheduler"

// SnapshotWorker generates the daily analytics snapshot at a fixed UTC hour.
// Weekly and monthly snapshots ride on the daily run: Mondays add a weekly
// snapshot, the first of the month a monthly one.
type SnapshotWorker struct {
	snapshots service.SnapshotGenerator
	now       func() time.Time
}

// NewSnapshotWorker creates a new snapshot worker
func NewSnapshotWorker(snapshots service.SnapshotGenerator) *SnapshotWorker {
	return &SnapshotWorker{
		snapshots: snapshots,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the snapshot worker. The returned function stops it.
func (w *SnapshotWorker) Start(ctx context.Context, snapshotHour int) func() {
	stopChan := make(chan struct{})

	calculateNextRun := func() time.Duration {
		now := w.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), snapshotHour, 0, 0, 0, time.UTC)
		if now.After(next) || now.Equal(next) {
			next = next.Add(24 * time.Hour)
		}
		return next.Sub(now)
	}

	go func() {
		log.Infof("Snapshot worker started, next run at %02d:00 UTC", snapshotHour)

		for {
			waitDuration := calculateNextRun()
			log.Infof("Snapshot worker waiting %v until next run", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("Snapshot worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Snapshot worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				w.runScheduled(ctx)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// runScheduled generates every snapshot type due at this run. Failures are
// logged and do not stop the remaining types or the schedule.
func (w *SnapshotWorker) runScheduled(ctx context.Context) {
	for _, snapshotType := range w.dueTypes() {
		if err := w.generate(ctx, snapshotType); err != nil {
			log.WithError(err).Errorf("Failed to generate %s snapshot", snapshotType)
		}
	}
}

// dueTypes returns the snapshot types due today: always daily, weekly on
// Mondays, monthly on the first of the month
func (w *SnapshotWorker) dueTypes() []models.SnapshotType {
	now := w.now()
	types := []models.SnapshotType{models.SnapshotTypeDaily}
	if now.Weekday() == time.Monday {
		types = append(types, models.SnapshotTypeWeekly)
	}
	if now.Day() == 1 {
		types = append(types, models.SnapshotTypeMonthly)
	}
	return types
}

func (w *SnapshotWorker) generate(ctx context.Context, snapshotType models.SnapshotType) error {
	start := w.now()
	snapshot, err := w.snapshots.GenerateSnapshot(ctx, snapshotType, nil, nil, generatedBySource)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"snapshot_id": snapshot.ID,
		"type":        snapshotType,
		"duration":    time.Since(start).String(),
	}).Info("Generated analytics snapshot")

	return nil
}
