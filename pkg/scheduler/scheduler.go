// Package scheduler posts generated jokes on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/tweet"
)

//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// Generator makes tweet text with a strategy
type Generator interface {
	Generate(ctx context.Context, s tweet.Strategy) string
}

// Publisher posts text
type Publisher interface {
	Publish(ctx context.Context, text string, trigger domain.PostTrigger) (*tweet.Tweet, error)
}

// Config holds scheduler configuration
type Config struct {
	Interval   time.Duration // zero disables posting
	Strategy   tweet.Strategy
	RunOnStart bool
}

// Scheduler manages periodic posting
type Scheduler struct {
	generator  Generator
	publisher  Publisher
	strategy   tweet.Strategy
	interval   time.Duration
	runOnStart bool
	wg         sync.WaitGroup
	cancel     context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(generator Generator, publisher Publisher, cfg Config) *Scheduler {
	return &Scheduler{
		generator:  generator,
		publisher:  publisher,
		strategy:   cfg.Strategy,
		interval:   cfg.Interval,
		runOnStart: cfg.RunOnStart,
	}
}

// Start begins the scheduler, does nothing if the interval is zero
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		lgr.Printf("[INFO] scheduled posting disabled")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.postWorker(ctx)

	lgr.Printf("[INFO] scheduler started with post interval %v, strategy %s", s.interval, s.strategy.Name())
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// postWorker posts once per interval
func (s *Scheduler) postWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if s.runOnStart {
		s.post(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.post(ctx)
		}
	}
}

// post generates and publishes one tweet, failures are logged only
func (s *Scheduler) post(ctx context.Context) {
	text := s.generator.Generate(ctx, s.strategy)
	tw, err := s.publisher.Publish(ctx, text, domain.TriggerSchedule)
	switch {
	case errors.Is(err, tweet.ErrRateLimited):
		lgr.Printf("[INFO] scheduled post skipped: %v", err)
	case err != nil:
		lgr.Printf("[ERROR] scheduled post failed: %v", err)
	default:
		lgr.Printf("[DEBUG] scheduled post %s: %q", tw.ID, text)
	}
}
