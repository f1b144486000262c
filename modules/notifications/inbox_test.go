package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waqfpal/console/modules/directory"
	"github.com/waqfpal/console/modules/notifications"
)

func TestInboxDelivererWritesEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entries := notifications.NewMemoryInboxStore()
	deliverer := notifications.NewInboxDeliverer(entries)

	n := newTestNotification("inbox copy", notifications.StatusDraft, time.Now())
	recipient := directory.Account{ID: "u1", Name: "Amina", Role: directory.RoleUser}

	require.NoError(t, deliverer.Deliver(ctx, n, recipient))

	list, err := entries.ListByAccount(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].NotificationID)
	assert.False(t, list[0].Read)
	assert.Nil(t, list[0].ReadAt)
}

func TestInboxMarkReadBumpsReadCountOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	entries := notifications.NewMemoryInboxStore()
	inbox := notifications.NewInbox(entries, store)
	deliverer := notifications.NewInboxDeliverer(entries)

	n := newTestNotification("quarterly report", notifications.StatusSent, time.Now())
	require.NoError(t, store.Create(ctx, n))

	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, deliverer.Deliver(ctx, n, directory.Account{ID: id}))
	}

	require.NoError(t, inbox.MarkRead(ctx, "u1", n.ID))
	// Repeated reads by the same account must not inflate the count.
	require.NoError(t, inbox.MarkRead(ctx, "u1", n.ID))
	require.NoError(t, inbox.MarkRead(ctx, "u2", n.ID))

	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReadCount)

	list, err := entries.ListByAccount(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
	require.NotNil(t, list[0].ReadAt)
}

func TestInboxSurvivesNotificationDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	entries := notifications.NewMemoryInboxStore()
	svc := notifications.NewService(store, nil)
	deliverer := notifications.NewInboxDeliverer(entries)

	n := newTestNotification("retired policy", notifications.StatusSent, time.Now())
	require.NoError(t, store.Create(ctx, n))
	require.NoError(t, deliverer.Deliver(ctx, n, directory.Account{ID: "u1"}))

	require.NoError(t, svc.Delete(ctx, n.ID))

	_, err := store.Get(ctx, n.ID)
	require.ErrorIs(t, err, notifications.ErrNotificationNotFound)

	// Delivered copies stay in recipients' inboxes after the source is gone.
	list, err := entries.ListByAccount(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].NotificationID)
}

func TestInboxMarkReadUnknownEntry(t *testing.T) {
	t.Parallel()

	inbox := notifications.NewInbox(notifications.NewMemoryInboxStore(), notifications.NewMemoryStorage())

	err := inbox.MarkRead(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, notifications.ErrInboxEntryNotFound)
}

func TestInboxUnreadFiltering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	entries := notifications.NewMemoryInboxStore()
	inbox := notifications.NewInbox(entries, store)
	deliverer := notifications.NewInboxDeliverer(entries)

	first := newTestNotification("first", notifications.StatusSent, time.Now())
	second := newTestNotification("second", notifications.StatusSent, time.Now())
	for _, n := range []notifications.Notification{first, second} {
		require.NoError(t, store.Create(ctx, n))
		require.NoError(t, deliverer.Deliver(ctx, n, directory.Account{ID: "u1"}))
	}

	count, err := inbox.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, inbox.MarkRead(ctx, "u1", first.ID))

	count, err = inbox.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	unread, err := inbox.List(ctx, "u1", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, second.ID, unread[0].NotificationID)

	all, err := inbox.List(ctx, "u1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
