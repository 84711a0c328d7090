package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"resume-match/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the careers scraper on a cron spec. Overlapping runs are
// skipped.
type Scheduler struct {
	cron    *cron.Cron
	scraper *CareersScraper
	targets []Target
	log     *zap.Logger

	mu      sync.Mutex
	running bool
}

func NewScheduler(s *CareersScraper, targets []Target, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		scraper: s,
		targets: targets,
		log:     logger.OrNop(log),
	}
}

// Start registers the job and starts the cron loop. An empty spec disables
// scheduling. Runs use ctx and stop when it is canceled.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}
	if len(s.targets) == 0 {
		s.log.Warn("scraper schedule set but no targets configured")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid scraper schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Info("scraper scheduled", zap.String("schedule", spec), zap.Int("targets", len(s.targets)))
	return nil
}

// RunOnce scrapes all targets unless a run is already in progress.
func (s *Scheduler) RunOnce(ctx context.Context) []Summary {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Info("scraper run skipped, previous run still active")
		return nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	out, err := s.scraper.Run(ctx, s.targets)
	if err != nil {
		s.log.Warn("scraper run stopped", zap.Error(err))
	}
	return out
}

// Stop halts the cron loop and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
