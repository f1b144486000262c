package notifications_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waqfpal/console/core"
	"github.com/waqfpal/console/modules/notifications"
)

func TestCreateInputValidate(t *testing.T) {
	t.Parallel()

	valid := notifications.CreateInput{
		Title:    "Scheduled maintenance",
		Content:  "The console will be unavailable on Friday night.",
		Type:     notifications.TypeMaintenance,
		Audience: notifications.AudienceAll,
	}

	t.Run("valid input passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*notifications.CreateInput)
		field  string
	}{
		{
			name:   "blank title",
			mutate: func(in *notifications.CreateInput) { in.Title = "   " },
			field:  "title",
		},
		{
			name:   "blank content",
			mutate: func(in *notifications.CreateInput) { in.Content = "" },
			field:  "content",
		},
		{
			name:   "unknown type",
			mutate: func(in *notifications.CreateInput) { in.Type = "newsletter" },
			field:  "type",
		},
		{
			name:   "unknown audience",
			mutate: func(in *notifications.CreateInput) { in.Audience = "everyone" },
			field:  "target_audience",
		},
		{
			name: "specific audience without targets",
			mutate: func(in *notifications.CreateInput) {
				in.Audience = notifications.AudienceSpecific
				in.TargetAccountIDs = nil
			},
			field: "target_account_ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)

			var verr core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field), "expected error on field %q", tt.field)
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, notifications.StatusDraft.Terminal())
	assert.False(t, notifications.StatusScheduled.Terminal())
	assert.True(t, notifications.StatusSent.Terminal())
	assert.True(t, notifications.StatusCancelled.Terminal())
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, notifications.TypeAlert.Valid())
	assert.False(t, notifications.Type("sms").Valid())

	assert.True(t, notifications.AudienceSpecific.Valid())
	assert.False(t, notifications.Audience("nobody").Valid())

	assert.True(t, notifications.StatusScheduled.Valid())
	assert.False(t, notifications.Status("pending").Valid())
}
