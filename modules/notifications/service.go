package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/waqfpal/console/pkg/logger"
)

// Service owns the notification lifecycle outside of sending: creation,
// lookup, and deletion. Broadcasting is the Engine's job.
type Service struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates the notification lifecycle service.
func NewService(storage Storage, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		storage: storage,
		log:     log.With(logger.Component("notifications.service")),
		now:     time.Now,
	}
}

// Create validates the input and persists a new notification. Notifications
// with a future schedule start out scheduled; everything else starts as a
// draft awaiting an explicit send.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	n := Notification{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Content:          in.Content,
		Type:             in.Type,
		Audience:         in.Audience,
		TargetAccountIDs: in.TargetAccountIDs,
		Status:           StatusDraft,
		ScheduledFor:     in.ScheduledFor,
		CreatedBy:        in.CreatedBy,
		CreatedAt:        s.now().UTC(),
	}
	if in.ScheduledFor != nil {
		n.Status = StatusScheduled
	}

	if err := s.storage.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.log.InfoContext(ctx, "notification created",
		logger.NotificationID(n.ID),
		logger.Audience(string(n.Audience)),
		logger.Status(string(n.Status)),
	)
	return &n, nil
}

// Get returns the notification with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*Notification, error) {
	return s.storage.Get(ctx, id)
}

// Delete removes a notification in any status. Deleting a sent notification
// removes the record but does not retract copies already delivered to
// recipient inboxes.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "notification deleted", logger.NotificationID(id))
	return nil
}
