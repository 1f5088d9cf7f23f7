package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec fires at 00:00 and 12:00.
const DefaultSpec = "0 0,12 * * *"

// Scheduler runs one job on a cron schedule. A firing that arrives while the
// previous run is still going is skipped, and a panicking job is logged and
// recovered.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	location *time.Location
	job      cron.Job
	logger   *zap.Logger

	ctx context.Context
	// immediate tracks the run-on-start job, which cron does not know about.
	immediate sync.WaitGroup
}

func New(spec, timezone string, logger *zap.Logger, run func(ctx context.Context)) (*Scheduler, error) {
	if run == nil {
		return nil, errors.New("scheduled job is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(spec) == "" {
		spec = DefaultSpec
	}

	location, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	cronLogger := NewLogger(logger)
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cronLogger),
		),
		schedule: schedule,
		location: location,
		logger:   logger,
		ctx:      context.Background(),
	}
	s.job = cron.NewChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	).Then(cron.FuncJob(func() { run(s.ctx) }))

	s.cron.Schedule(schedule, s.job)
	return s, nil
}

// Next returns the next firing after from, in the scheduler's location.
func (s *Scheduler) Next(from time.Time) time.Time {
	return s.schedule.Next(from.In(s.location))
}

// Run starts the scheduler and blocks until ctx is done, then waits for any
// in-flight job to return, including the immediate one. With runNow the job
// also fires immediately, through the same skip and recover guards as
// scheduled firings.
func (s *Scheduler) Run(ctx context.Context, runNow bool) error {
	s.ctx = ctx
	s.cron.Start()
	if runNow {
		s.immediate.Add(1)
		go func() {
			defer s.immediate.Done()
			s.job.Run()
		}()
	}
	s.logger.Info("scheduler started",
		zap.String("timezone", s.location.String()),
		zap.Time("next_run", s.Next(time.Now())),
	)

	<-ctx.Done()

	s.logger.Info("scheduler stopping, waiting for running job")
	<-s.cron.Stop().Done()
	s.immediate.Wait()
	s.logger.Info("scheduler stopped")
	return nil
}

func LoadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return location, nil
}
