// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of background work.
type Job interface {
	// Name identifies the job in logs and for on-demand runs.
	Name() string
	// Schedule is a cron spec ("@every 6h", "0 3 * * *"). Empty means on-demand only.
	Schedule() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	timeout time.Duration
	logger  *zap.Logger
}

// NewScheduler returns a scheduler that bounds every run by timeout.
func NewScheduler(timeout time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(),
		timeout: timeout,
		logger:  logger,
	}
}

func (s *Scheduler) Register(job Job) error {
	if spec := job.Schedule(); spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.execute(context.Background(), job) }); err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
		}
		s.logger.Info("job scheduled", zap.String("job", job.Name()), zap.String("schedule", spec))
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	if err != nil {
		s.logger.Error("job failed", zap.String("job", job.Name()), zap.Error(err))
		return err
	}
	s.logger.Info("job completed", zap.String("job", job.Name()), zap.Duration("took", time.Since(start)))
	return nil
}

// RunNow executes the named job synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			return s.execute(ctx, job)
		}
	}
	return fmt.Errorf("job %q not registered", name)
}

func (s *Scheduler) Jobs() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop halts scheduling and waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
