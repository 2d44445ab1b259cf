package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ritualcoach/internal/modules/reminder/domain"
	reminderout "ritualcoach/internal/modules/reminder/port/out"
	apperrors "ritualcoach/internal/platform/errors"
)

// Scheduler fires a reminder every day at the profile's daily time.
type Scheduler struct {
	source   reminderout.StatusSource
	notifier reminderout.Notifier
	loc      *time.Location
	logger   *zap.Logger
	timeout  time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

func NewScheduler(source reminderout.StatusSource, notifier reminderout.Notifier, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		source:   source,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
		timeout:  30 * time.Second,
	}
}

// Schedule resolves the daily reminder time from the saved profile.
func (s *Scheduler) Schedule(ctx context.Context) (domain.Schedule, error) {
	status, found, err := s.source.Status(ctx)
	if err != nil {
		return domain.Schedule{}, err
	}
	if !found {
		return domain.Schedule{}, apperrors.ErrNoProfile
	}
	schedule, err := domain.ParseDailyTime(status.DailyTime)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return schedule, nil
}

// Start registers the daily job and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context) (domain.Schedule, error) {
	schedule, err := s.Schedule(ctx)
	if err != nil {
		return domain.Schedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return domain.Schedule{}, fmt.Errorf("reminder scheduler already running")
	}
	runner := cron.New(cron.WithLocation(s.loc))
	id, err := runner.AddFunc(schedule.CronSpec(), s.fire)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("failed to add cron job: %w", err)
	}
	runner.Start()
	s.cron = runner
	s.entryID = id
	s.logger.Info("reminder scheduled", zap.String("at", schedule.String()), zap.String("time_zone", s.loc.String()))
	return schedule, nil
}

// Next reports the next planned run, or false when not started.
func (s *Scheduler) Next() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return time.Time{}, false
	}
	return s.cron.Entry(s.entryID).Next, true
}

// Stop halts the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	runner := s.cron
	s.cron = nil
	s.mu.Unlock()
	if runner == nil {
		return
	}
	<-runner.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
}

// RemindNow composes today's reminder and sends it.
func (s *Scheduler) RemindNow(ctx context.Context) (domain.Reminder, error) {
	status, found, err := s.source.Status(ctx)
	if err != nil {
		return domain.Reminder{}, err
	}
	if !found {
		return domain.Reminder{}, apperrors.ErrNoProfile
	}
	reminder := domain.Compose(status)
	if err := s.notifier.Notify(ctx, reminder); err != nil {
		return domain.Reminder{}, fmt.Errorf("send reminder: %w", err)
	}
	return reminder, nil
}

func (s *Scheduler) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.RemindNow(ctx); err != nil {
		s.logger.Error("reminder failed", zap.Error(err))
	}
}
