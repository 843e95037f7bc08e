package match

import (
	"context"
	"log"
	"time"
)

// Scheduler triggers the nightly recommendation batch
type Scheduler struct {
	service Service
	hour    int
	timeout time.Duration
}

func NewScheduler(service Service, hour int, timeout time.Duration) *Scheduler {
	return &Scheduler{service: service, hour: hour, timeout: timeout}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runDaily(ctx, s.hour, 0, s.generate)
}

func (s *Scheduler) generate(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.service.GenerateDailyRecommendations(runCtx)
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			if err := task(ctx); err != nil {
				log.Printf("Scheduled recommendation batch failed: %v", err)
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
