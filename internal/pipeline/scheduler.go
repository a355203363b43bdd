package pipeline

import (
	"context"
	"log"
	"time"
)

// Scheduler fires the matching pipeline once a day at a fixed UTC hour, and
// on demand through TriggerNow. Overlapping triggers while a run is in
// flight are coalesced into at most one queued run.
type Scheduler struct {
	pipeline *MatchingPipeline
	hourUTC  int
	trigger  chan struct{}
}

func NewScheduler(p *MatchingPipeline, hourUTC int) *Scheduler {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 6
	}
	return &Scheduler{
		pipeline: p,
		hourUTC:  hourUTC,
		trigger:  make(chan struct{}, 1),
	}
}

// TriggerNow requests an immediate run. Safe to call from any goroutine.
func (s *Scheduler) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start blocks until the context is cancelled, running the pipeline at each
// scheduled tick and on each manual trigger.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("pipeline=matching scheduler=started hour_utc=%d", s.hourUTC)
	for {
		timer := time.NewTimer(time.Until(s.nextTick(time.Now().UTC())))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("pipeline=matching scheduler=stopped")
			return
		case <-timer.C:
		case <-s.trigger:
			timer.Stop()
		}

		if _, err := s.pipeline.Run(ctx); err != nil {
			log.Printf("pipeline=matching scheduler=run_error error=%q", err)
		}
	}
}

func (s *Scheduler) nextTick(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
