package daemon

import (
	"log/slog"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

// Scheduler wraps gocron for the periodic regeneration job.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler that runs task on the given cron
// expression (standard 5-field crontab).
func NewScheduler(cronExpr string, task func()) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "create scheduler")
	}
	_, err = s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(task),
		gocron.WithName("scheduled-generate"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errors.Config("invalid generate schedule: "+cronExpr, err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}
