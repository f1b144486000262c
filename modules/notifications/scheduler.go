package notifications

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/waqfpal/console/pkg/logger"
)

const defaultSchedulerInterval = time.Minute

// Scheduler periodically sends notifications whose schedule has come due.
// It relies on the storage-level status guard, so two schedulers polling
// the same database never double-send.
type Scheduler struct {
	engine   *Engine
	storage  Storage
	log      *slog.Logger
	interval time.Duration
	now      func() time.Time
}

// SchedulerOption customizes the scheduler.
type SchedulerOption func(*Scheduler)

// WithPollInterval sets how often due notifications are checked. Panics on
// a non-positive interval.
func WithPollInterval(d time.Duration) SchedulerOption {
	if d <= 0 {
		panic("notifications: poll interval must be positive")
	}
	return func(s *Scheduler) { s.interval = d }
}

// NewScheduler creates a scheduler that sends due notifications through the
// given engine.
func NewScheduler(engine *Engine, storage Storage, log *slog.Logger, opts ...SchedulerOption) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{
		engine:   engine,
		storage:  storage,
		log:      log.With(logger.Component("notifications.scheduler")),
		interval: defaultSchedulerInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run polls for due notifications until the context is cancelled. It always
// returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick sends every notification due at this moment. Failures are logged and
// retried on the next tick; a notification another process got to first is
// skipped silently.
func (s *Scheduler) tick(ctx context.Context) {
	due, err := s.storage.ListDue(ctx, s.now().UTC())
	if err != nil {
		s.log.ErrorContext(ctx, "failed to list due notifications", logger.Error(err))
		return
	}

	for _, n := range due {
		if _, err := s.engine.Send(ctx, n.ID); err != nil {
			if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrNotificationNotFound) {
				continue
			}
			s.log.ErrorContext(ctx, "failed to send scheduled notification",
				logger.NotificationID(n.ID),
				logger.Error(err),
			)
		}
	}
}
