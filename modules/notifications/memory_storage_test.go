package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waqfpal/console/modules/notifications"
)

func newTestNotification(title string, status notifications.Status, createdAt time.Time) notifications.Notification {
	return notifications.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   "body of " + title,
		Type:      notifications.TypeAnnouncement,
		Audience:  notifications.AudienceAll,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestMemoryStorageGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()

	n := newTestNotification("welcome", notifications.StatusDraft, time.Now())
	require.NoError(t, store.Create(ctx, n))

	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, "welcome", got.Title)

	_, err = store.Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, notifications.ErrNotificationNotFound)
}

func TestMemoryStorageListOrderingAndFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	oldest := newTestNotification("oldest", notifications.StatusSent, base)
	middle := newTestNotification("middle", notifications.StatusDraft, base.Add(time.Hour))
	newest := newTestNotification("newest", notifications.StatusDraft, base.Add(2*time.Hour))
	newest.Type = notifications.TypeAlert

	for _, n := range []notifications.Notification{oldest, middle, newest} {
		require.NoError(t, store.Create(ctx, n))
	}

	t.Run("newest first without filters", func(t *testing.T) {
		t.Parallel()
		items, total, err := store.List(ctx, notifications.Filter{}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 3)
		assert.Equal(t, "newest", items[0].Title)
		assert.Equal(t, "middle", items[1].Title)
		assert.Equal(t, "oldest", items[2].Title)
	})

	t.Run("status filter", func(t *testing.T) {
		t.Parallel()
		draft := notifications.StatusDraft
		items, total, err := store.List(ctx, notifications.Filter{Status: &draft}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, "newest", items[0].Title)
		assert.Equal(t, "middle", items[1].Title)
	})

	t.Run("type and status filters combine with AND", func(t *testing.T) {
		t.Parallel()
		draft := notifications.StatusDraft
		alert := notifications.TypeAlert
		items, total, err := store.List(ctx, notifications.Filter{Type: &alert, Status: &draft}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "newest", items[0].Title)
	})

	t.Run("page beyond the last is empty", func(t *testing.T) {
		t.Parallel()
		items, total, err := store.List(ctx, notifications.Filter{}, 5, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, items)
	})

	t.Run("pagination splits pages", func(t *testing.T) {
		t.Parallel()
		items, total, err := store.List(ctx, notifications.Filter{}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 1)
		assert.Equal(t, "oldest", items[0].Title)
	})
}

func TestMemoryStorageMarkSentGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()

	n := newTestNotification("release notes", notifications.StatusDraft, time.Now())
	require.NoError(t, store.Create(ctx, n))

	sentAt := time.Now().UTC()
	updated, err := store.MarkSent(ctx, n.ID, 7, sentAt)
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSent, updated.Status)
	assert.Equal(t, 7, updated.SentCount)
	require.NotNil(t, updated.SentAt)

	// The second attempt must fail and leave the first result intact.
	_, err = store.MarkSent(ctx, n.ID, 99, time.Now().UTC())
	require.ErrorIs(t, err, notifications.ErrInvalidStatus)

	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.SentCount)
	assert.Equal(t, notifications.StatusSent, got.Status)

	_, err = store.MarkSent(ctx, uuid.NewString(), 1, time.Now())
	require.ErrorIs(t, err, notifications.ErrNotificationNotFound)
}

func TestMemoryStorageMarkCancelled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()

	n := newTestNotification("obsolete", notifications.StatusScheduled, time.Now())
	require.NoError(t, store.Create(ctx, n))

	updated, err := store.MarkCancelled(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusCancelled, updated.Status)

	_, err = store.MarkSent(ctx, n.ID, 1, time.Now())
	require.ErrorIs(t, err, notifications.ErrInvalidStatus)
}

func TestMemoryStorageListDue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	now := time.Now().UTC()

	due := newTestNotification("due", notifications.StatusScheduled, now.Add(-2*time.Hour))
	dueAt := now.Add(-time.Minute)
	due.ScheduledFor = &dueAt

	future := newTestNotification("future", notifications.StatusScheduled, now.Add(-time.Hour))
	futureAt := now.Add(time.Hour)
	future.ScheduledFor = &futureAt

	draft := newTestNotification("draft", notifications.StatusDraft, now)

	for _, n := range []notifications.Notification{due, future, draft} {
		require.NoError(t, store.Create(ctx, n))
	}

	got, err := store.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due.ID, got[0].ID)
}

func TestMemoryStorageDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()

	n := newTestNotification("temp", notifications.StatusSent, time.Now())
	require.NoError(t, store.Create(ctx, n))

	require.NoError(t, store.Delete(ctx, n.ID))

	_, err := store.Get(ctx, n.ID)
	require.ErrorIs(t, err, notifications.ErrNotificationNotFound)

	require.ErrorIs(t, store.Delete(ctx, n.ID), notifications.ErrNotificationNotFound)
}

func TestMemoryStorageIncrementReadCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()

	n := newTestNotification("read me", notifications.StatusSent, time.Now())
	require.NoError(t, store.Create(ctx, n))

	require.NoError(t, store.IncrementReadCount(ctx, n.ID))
	require.NoError(t, store.IncrementReadCount(ctx, n.ID))

	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReadCount)

	require.ErrorIs(t, store.IncrementReadCount(ctx, uuid.NewString()), notifications.ErrNotificationNotFound)
}
