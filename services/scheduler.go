package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler is an optional in-process trigger for deployments without
// external cron. It fires the dispatcher once per calendar minute,
// re-aligning to the wall clock before every tick so minutes stay on
// the :00 boundary over long uptimes and each minute is evaluated at
// most once. Minutes missed while the process is down (or while a tick
// overruns) are not backfilled.
type Scheduler struct {
	dispatcher *Dispatcher
	log        *zap.Logger
}

func NewScheduler(d *Dispatcher, log *zap.Logger) *Scheduler {
	return &Scheduler{dispatcher: d, log: log}
}

// nextMinute returns the first minute boundary strictly after now.
func nextMinute(now time.Time) time.Time {
	return now.Truncate(time.Minute).Add(time.Minute)
}

// Run blocks until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextMinute(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("reminder scheduler stopping")
			return
		case <-timer.C:
			s.tick(ctx, next)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	outcomes, err := s.dispatcher.RunTick(ctx, now)
	if err != nil {
		s.log.Error("reminder tick failed", zap.Error(err))
		return
	}
	if len(outcomes) == 0 {
		return
	}
	delivered, failed := SummarizeOutcomes(outcomes)
	s.log.Info("reminder tick completed",
		zap.Int("delivered", delivered),
		zap.Int("failed", failed),
	)
}
