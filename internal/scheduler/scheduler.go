package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/planora/eventcast/internal/event"
)

// Scheduler periodically re-checks weather for every stored event so
// suitability ratings do not go stale between explicit weather checks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	events    *event.Service
	interval  time.Duration
}

// New creates a new Scheduler. An interval of zero disables it.
func New(interval time.Duration, events *event.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		events:    events,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: periodic refresh disabled; no interval configured")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// refreshAll re-checks every stored event. Failures are logged and skipped;
// a provider outage must not take the job down.
func (s *Scheduler) refreshAll() {
	log.Println("scheduler: running weather refresh job")

	all, err := s.events.List()
	if err != nil {
		log.Printf("scheduler: listing events failed: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, e := range all {
		e := e
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := s.events.RefreshWeather(ctx, e.ID); err != nil {
				log.Printf("scheduler: refresh failed for event %d (%s): %v", e.ID, e.City, err)
			}
		}()
	}
	wg.Wait()

	log.Println("scheduler: completed weather refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
