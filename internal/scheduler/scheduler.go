package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/config"
)

const runTimeout = 2 * time.Minute

// Reminders sends the follow-up reminders due on a given day.
type Reminders interface {
	SendFollowUpReminders(ctx context.Context, day time.Time) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reminders Reminders
	schedule  string
	location  *time.Location
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
func NewScheduler(cfg config.SchedulerConfig, reminders Reminders, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// The standard five-field parser: minute, hour, day of month, month, day of week.
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:      c,
		reminders: reminders,
		schedule:  cfg.FollowUpSchedule,
		location:  loc,
		logger:    logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendFollowUpReminders); err != nil {
		return fmt.Errorf("schedule follow-up reminders %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("followup_schedule", s.schedule), zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendFollowUpReminders() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("follow-up reminder job panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	day := time.Now().In(s.location)
	sent, err := s.reminders.SendFollowUpReminders(ctx, day)
	if err != nil {
		s.logger.Error("failed to send follow-up reminders", zap.Error(err), zap.Int("sent", sent))
		return
	}
	s.logger.Info("follow-up reminders completed", zap.Int("sent", sent))
}
