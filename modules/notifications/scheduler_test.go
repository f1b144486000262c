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

func TestSchedulerSendsDueNotifications(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := notifications.NewMemoryStorage()
	dir := directory.NewMemoryDirectory()
	seedAccounts(dir, directory.RoleUser, 3)

	engine := notifications.NewEngine(store, dir, notifications.NoOpDeliverer{}, nil)
	scheduler := notifications.NewScheduler(engine, store, nil, notifications.WithPollInterval(10*time.Millisecond))

	now := time.Now().UTC()

	due := newTestNotification("due now", notifications.StatusScheduled, now.Add(-time.Hour))
	due.Audience = notifications.AudienceUsers
	dueAt := now.Add(-time.Second)
	due.ScheduledFor = &dueAt
	require.NoError(t, store.Create(ctx, due))

	future := newTestNotification("much later", notifications.StatusScheduled, now.Add(-time.Hour))
	future.Audience = notifications.AudienceUsers
	futureAt := now.Add(24 * time.Hour)
	future.ScheduledFor = &futureAt
	require.NoError(t, store.Create(ctx, future))

	done := make(chan error, 1)
	go func() { done <- scheduler.Run(ctx) }()

	require.Eventually(t, func() bool {
		n, err := store.Get(ctx, due.ID)
		return err == nil && n.Status == notifications.StatusSent
	}, 2*time.Second, 10*time.Millisecond, "due notification should be sent")

	sent, err := store.Get(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sent.SentCount)

	untouched, err := store.Get(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusScheduled, untouched.Status)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	store := notifications.NewMemoryStorage()
	engine := notifications.NewEngine(store, directory.NewMemoryDirectory(), notifications.NoOpDeliverer{}, nil)
	scheduler := notifications.NewScheduler(engine, store, nil, notifications.WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := scheduler.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSchedulerOptionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { notifications.WithPollInterval(0) })
}
