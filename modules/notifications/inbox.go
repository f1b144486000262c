package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waqfpal/console/modules/directory"
)

// InboxEntry is one recipient's copy of a sent notification. Entries are
// created during fan-out and flipped to read individually per account.
type InboxEntry struct {
	ID             string     `json:"id"`
	NotificationID string     `json:"notification_id"`
	AccountID      string     `json:"account_id"`
	Read           bool       `json:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// InboxStore persists per-recipient inbox entries.
type InboxStore interface {
	// Add stores a new inbox entry.
	Add(ctx context.Context, entry InboxEntry) error

	// ListByAccount returns the account's entries, newest first.
	ListByAccount(ctx context.Context, accountID string, unreadOnly bool) ([]InboxEntry, error)

	// MarkRead flips the entry to read, recording the read time. Marking an
	// already-read entry is a no-op; the returned flag reports whether the
	// entry transitioned. Returns ErrInboxEntryNotFound when the account has
	// no entry for the notification.
	MarkRead(ctx context.Context, accountID, notificationID string, at time.Time) (bool, error)

	// CountUnread returns the number of unread entries for the account.
	CountUnread(ctx context.Context, accountID string) (int, error)
}

// InboxDeliverer delivers notifications by writing an inbox entry per
// recipient. This is the console's in-app channel; external transports
// plug in as additional Deliverers.
type InboxDeliverer struct {
	store InboxStore
	now   func() time.Time
}

// NewInboxDeliverer creates a deliverer that writes to the given inbox store.
func NewInboxDeliverer(store InboxStore) *InboxDeliverer {
	return &InboxDeliverer{store: store, now: time.Now}
}

func (d *InboxDeliverer) Deliver(ctx context.Context, n Notification, recipient directory.Account) error {
	entry := InboxEntry{
		ID:             uuid.NewString(),
		NotificationID: n.ID,
		AccountID:      recipient.ID,
		CreatedAt:      d.now().UTC(),
	}
	if err := d.store.Add(ctx, entry); err != nil {
		return fmt.Errorf("failed to write inbox entry for account %s: %w", recipient.ID, err)
	}
	return nil
}

// Inbox serves the recipient-facing side: listing an account's entries and
// marking them read. Read transitions bump the notification's aggregate
// read count exactly once per recipient.
type Inbox struct {
	entries InboxStore
	storage Storage
	now     func() time.Time
}

// NewInbox creates the recipient-facing inbox service.
func NewInbox(entries InboxStore, storage Storage) *Inbox {
	return &Inbox{entries: entries, storage: storage, now: time.Now}
}

// List returns the account's inbox entries, newest first.
func (i *Inbox) List(ctx context.Context, accountID string, unreadOnly bool) ([]InboxEntry, error) {
	return i.entries.ListByAccount(ctx, accountID, unreadOnly)
}

// CountUnread returns how many unread entries the account has.
func (i *Inbox) CountUnread(ctx context.Context, accountID string) (int, error) {
	return i.entries.CountUnread(ctx, accountID)
}

// MarkRead marks the account's copy of the notification as read. The first
// transition increments the notification's read count; repeated calls are
// no-ops.
func (i *Inbox) MarkRead(ctx context.Context, accountID, notificationID string) error {
	transitioned, err := i.entries.MarkRead(ctx, accountID, notificationID, i.now().UTC())
	if err != nil {
		return err
	}
	if !transitioned {
		return nil
	}
	if err := i.storage.IncrementReadCount(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to bump read count: %w", err)
	}
	return nil
}
