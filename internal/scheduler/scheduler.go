package scheduler

import (
	"fmt"

	"cblbot/internal/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs housekeeping jobs on cron schedules
type Scheduler struct {
	config *config.Config
	cron   *cron.Cron
	jobs   map[string]cron.EntryID
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		config: cfg,
		cron:   cron.New(),
		jobs:   make(map[string]cron.EntryID),
	}
}

// RegisterFunc schedules fn under spec (standard cron or descriptors such as
// "@hourly"). Errors returned by fn are logged, never fatal.
func (s *Scheduler) RegisterFunc(spec, name string, fn func() error) error {
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q is already registered", name)
	}

	id, err := s.cron.AddFunc(spec, s.wrap(name, fn))
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.jobs[name] = id
	s.config.Logger.Infof("Registered scheduled job %s (%s)", name, spec)
	return nil
}

func (s *Scheduler) wrap(name string, fn func() error) func() {
	return func() {
		s.config.Logger.Debugf("Running scheduled job %s", name)
		if err := fn(); err != nil {
			s.config.Logger.Errorf("Scheduled job %s failed: %v", name, err)
		}
	}
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.jobs)
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.config.Logger.Info("Scheduler started!")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.config.Logger.Info("Scheduler stopped")
}
