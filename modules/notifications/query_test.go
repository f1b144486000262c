package notifications_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waqfpal/console/core"
	"github.com/waqfpal/console/modules/notifications"
)

func TestQueryListDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := range 60 {
		n := newTestNotification(fmt.Sprintf("n-%02d", i), notifications.StatusDraft, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Create(ctx, n))
	}

	query := notifications.NewQuery(store)

	page, err := query.List(ctx, notifications.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 60, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 50)
	assert.Equal(t, "n-59", page.Items[0].Title)

	second, err := query.List(ctx, notifications.ListParams{Page: 2})
	require.NoError(t, err)
	require.Len(t, second.Items, 10)
	assert.Equal(t, "n-09", second.Items[0].Title)
}

func TestQueryListLimitCap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	query := notifications.NewQuery(store)

	page, err := query.List(ctx, notifications.ListParams{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
}

func TestQueryListFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := notifications.NewMemoryStorage()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	draft := newTestNotification("pending release", notifications.StatusDraft, base)
	sent := newTestNotification("old announcement", notifications.StatusSent, base.Add(time.Minute))
	alert := newTestNotification("disk alert", notifications.StatusDraft, base.Add(2*time.Minute))
	alert.Type = notifications.TypeAlert

	for _, n := range []notifications.Notification{draft, sent, alert} {
		require.NoError(t, store.Create(ctx, n))
	}

	query := notifications.NewQuery(store)

	page, err := query.List(ctx, notifications.ListParams{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "disk alert", page.Items[0].Title)
	assert.Equal(t, "pending release", page.Items[1].Title)

	page, err = query.List(ctx, notifications.ListParams{Status: "draft", Type: "alert"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "disk alert", page.Items[0].Title)
}

func TestQueryListRejectsUnknownFilterValues(t *testing.T) {
	t.Parallel()

	query := notifications.NewQuery(notifications.NewMemoryStorage())

	tests := []struct {
		name   string
		params notifications.ListParams
		field  string
	}{
		{"unknown type", notifications.ListParams{Type: "newsletter"}, "type"},
		{"unknown status", notifications.ListParams{Status: "archived"}, "status"},
		{"negative page", notifications.ListParams{Page: -1}, "page"},
		{"negative limit", notifications.ListParams{Limit: -5}, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := query.List(context.Background(), tt.params)
			require.Error(t, err)

			var verr core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field))
		})
	}
}
