// Package scheduler periodically copies spreadsheet listings into the database.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSchedule runs every 6 hours (seconds-field syntax)
const DefaultSchedule = "0 0 */6 * * *"

const syncTimeout = 10 * time.Minute

// Syncer copies listings from their source into storage
type Syncer interface {
	SyncListings(ctx context.Context) (int, error)
}

// Scheduler handles periodic listing sync
type Scheduler struct {
	syncer Syncer
	cron   *cron.Cron
	log    *logrus.Logger
	wg     sync.WaitGroup
}

// NewScheduler creates a new listing sync scheduler
func NewScheduler(syncer Syncer, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		syncer: syncer,
		cron:   cron.New(cron.WithSeconds()),
		log:    log,
	}
}

// Start begins the scheduled sync
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	if _, err := s.cron.AddFunc(schedule, s.runSync); err != nil {
		return err
	}

	s.cron.Start()
	s.log.WithField("schedule", schedule).Info("Listing sync scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running syncs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("Listing sync scheduler stopped")
}

// RunNow triggers an immediate sync in the background
func (s *Scheduler) RunNow() {
	s.log.Info("Triggering immediate listing sync")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runSync()
	}()
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.syncer.SyncListings(ctx)
	if err != nil {
		s.log.WithError(err).Error("Scheduled listing sync failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"synced":   n,
		"duration": time.Since(start).String(),
	}).Info("Scheduled listing sync completed")
}
