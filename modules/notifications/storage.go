package notifications

import (
	"context"
	"time"
)

// Filter narrows a notification listing. Nil fields mean "no filter";
// matching is exact on the enum values.
type Filter struct {
	Type   *Type
	Status *Status
}

// Storage handles notification persistence and retrieval. Implementations
// must enforce the at-most-once transition guard: MarkSent and
// MarkCancelled succeed only while the stored status is draft or scheduled,
// atomically with respect to concurrent callers.
type Storage interface {
	// Create stores a new notification record.
	Create(ctx context.Context, n Notification) error

	// Get retrieves a notification by ID, or ErrNotificationNotFound.
	Get(ctx context.Context, id string) (*Notification, error)

	// List returns one page of notifications matching the filter, newest
	// first, along with the total number of matching records.
	List(ctx context.Context, filter Filter, page, limit int) ([]Notification, int, error)

	// ListDue returns scheduled notifications whose scheduled_for time is
	// at or before the given instant.
	ListDue(ctx context.Context, before time.Time) ([]Notification, error)

	// Delete removes a notification, or returns ErrNotificationNotFound.
	Delete(ctx context.Context, id string) error

	// MarkSent finalizes a broadcast: status becomes sent, the delivery
	// count and sent_at are recorded. Fails with ErrNotificationNotFound
	// for unknown IDs and ErrInvalidStatus when the current status is
	// already terminal.
	MarkSent(ctx context.Context, id string, sentCount int, sentAt time.Time) (*Notification, error)

	// MarkCancelled transitions a draft or scheduled notification to
	// cancelled, under the same guard as MarkSent.
	MarkCancelled(ctx context.Context, id string) (*Notification, error)

	// MarkScheduled sets the status to scheduled with the given send time,
	// allowed from draft or scheduled.
	MarkScheduled(ctx context.Context, id string, at time.Time) (*Notification, error)

	// IncrementReadCount bumps the read counter when a recipient first
	// opens the notification.
	IncrementReadCount(ctx context.Context, id string) error
}
