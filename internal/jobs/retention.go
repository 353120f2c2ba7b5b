package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

// RetentionHorizon is how long booking notifications are kept.
const RetentionHorizon = 24 * time.Hour

// RetentionJob deletes notifications older than the retention horizon.
// Sweeps run from two sources: a fire-and-forget trigger after each webhook
// ingest and an hourly cron schedule, so quiet periods still get cleaned.
type RetentionJob struct {
	store     storage.Store
	cron      *cron.Cron
	trigger   chan struct{}
	quit      chan struct{}
	isRunning bool
}

// NewRetentionJob creates a new retention sweeper
func NewRetentionJob(store storage.Store) *RetentionJob {
	return &RetentionJob{
		store:   store,
		trigger: make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}
}

// Start begins the worker goroutine and the hourly schedule
func (j *RetentionJob) Start() {
	if j.isRunning {
		log.Println("Retention job already running")
		return
	}
	j.isRunning = true

	go j.run()

	j.cron = cron.New()
	if _, err := j.cron.AddFunc("@hourly", j.Sweep); err != nil {
		log.Printf("Failed to schedule hourly retention sweep: %v", err)
	}
	j.cron.Start()

	log.Println("Retention job started (hourly sweep + webhook trigger)")
}

// Stop halts the schedule and the worker
func (j *RetentionJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	if j.cron != nil {
		j.cron.Stop()
	}
	close(j.quit)
	log.Println("Retention job stopped")
}

// Trigger requests a sweep without waiting for it. Callers get no handle
// and no result; if a sweep is already pending that one is enough.
func (j *RetentionJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

func (j *RetentionJob) run() {
	for {
		select {
		case <-j.trigger:
			j.Sweep()
		case <-j.quit:
			return
		}
	}
}

// Sweep deletes notifications received strictly before now minus the
// horizon. Best effort: failures are logged and dropped, never propagated.
// Safe to run concurrently with ingestion and with itself; the cutoff is
// computed at invocation time and deleting an already-deleted record is a
// no-op at the store.
func (j *RetentionJob) Sweep() {
	cutoff := time.Now().Add(-RetentionHorizon)
	deleted, err := j.store.DeleteNotificationsBefore(cutoff)
	if err != nil {
		log.Printf("Cleanup error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Cleaned up %d old notifications", deleted)
	}
}
