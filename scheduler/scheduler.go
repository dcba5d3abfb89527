// Package scheduler runs the background jobs: the stale-post re-analysis
// sweep and monthly statistics housekeeping.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/beyondseo/backend/stats"
	"github.com/beyondseo/backend/store"
)

// AnalyzeFunc runs one full analysis pass for a post and persists it.
type AnalyzeFunc func(ctx context.Context, postID int64) error

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron       *cron.Cron
	store      *store.Store
	analyze    AnalyzeFunc
	monthly    *stats.Storage
	staleAfter time.Duration
	sweepLimit int
}

func New(st *store.Store, analyze AnalyzeFunc, monthly *stats.Storage, staleAfter time.Duration) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		store:      st,
		analyze:    analyze,
		monthly:    monthly,
		staleAfter: staleAfter,
		sweepLimit: 50,
	}
}

// Start registers the jobs and starts the cron runner. sweepSpec is a
// standard five-field cron expression.
func (s *Scheduler) Start(sweepSpec string) error {
	if _, err := s.cron.AddFunc(sweepSpec, s.sweep); err != nil {
		return err
	}
	// Monthly stats retention, first day of the month.
	if _, err := s.cron.AddFunc("0 4 1 * *", s.monthly.Cleanup); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// sweep re-analyzes posts whose newest result is older than the staleness
// cutoff. Posts are processed sequentially; the sweep is background work and
// must not compete with interactive requests for bandwidth.
func (s *Scheduler) sweep() {
	cutoff := time.Now().Add(-s.staleAfter)
	postIDs, err := s.store.StalePosts(cutoff, s.sweepLimit)
	if err != nil {
		log.Printf("sweep: listing stale posts: %v", err)
		return
	}
	if len(postIDs) == 0 {
		return
	}
	log.Printf("sweep: re-analyzing %d stale posts", len(postIDs))

	for _, postID := range postIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err := s.analyze(ctx, postID)
		cancel()
		if err != nil {
			log.Printf("sweep: post %d: %v", postID, err)
			continue
		}
		// The analyze func already counts the run itself.
		s.monthly.IncrementStats(0, 0, 0, 1)
	}
}
