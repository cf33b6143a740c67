package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Maintainer is the subset of the analytics service the scheduler drives.
type Maintainer interface {
	Reconcile() (int, error)
	PruneActivity(retention time.Duration) (int, error)
}

// Scheduler runs analytics housekeeping on cron schedules: dropping stats of
// deleted events and expiring old daily activity counters.
type Scheduler struct {
	analytics Maintainer
	retention time.Duration
	cron      *cron.Cron
}

// NewScheduler creates a new scheduler instance. reconcileSpec uses standard
// five-field cron syntax or a descriptor such as "@hourly".
func NewScheduler(analytics Maintainer, reconcileSpec string, retention time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		analytics: analytics,
		retention: retention,
		cron:      cron.New(),
	}
	if _, err := s.cron.AddFunc(reconcileSpec, s.reconcile); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", reconcileSpec, err)
	}
	if _, err := s.cron.AddFunc("@daily", s.pruneActivity); err != nil {
		return nil, err
	}
	return s, nil
}

// Run performs one pass immediately and then starts the cron loop.
func (s *Scheduler) Run() {
	log.Info().Msg("Starting analytics scheduler...")
	s.reconcile()
	s.pruneActivity()
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info().Msg("Stopped analytics scheduler.")
	case <-ctx.Done():
		log.Warn().Msg("Analytics scheduler did not stop in time")
	}
}

func (s *Scheduler) reconcile() {
	removed, err := s.analytics.Reconcile()
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to reconcile analytics")
		return
	}
	log.Debug().Int("removed", removed).Msg("Scheduler: analytics reconciled")
}

func (s *Scheduler) pruneActivity() {
	removed, err := s.analytics.PruneActivity(s.retention)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to prune activity")
		return
	}
	log.Debug().Int("removed", removed).Msg("Scheduler: activity pruned")
}
