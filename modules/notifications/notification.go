package notifications

import (
	"strings"
	"time"

	"github.com/waqfpal/console/core"
)

// Type classifies a notification. Classification only; it has no effect on
// how a notification is delivered.
type Type string

const (
	TypeAnnouncement Type = "announcement"
	TypeUpdate       Type = "update"
	TypeMaintenance  Type = "maintenance"
	TypeAlert        Type = "alert"
)

// Valid reports whether t is a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeAnnouncement, TypeUpdate, TypeMaintenance, TypeAlert:
		return true
	}
	return false
}

// Audience selects which accounts a notification is broadcast to.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceAdmins   Audience = "admins"
	AudienceUsers    Audience = "users"
	AudienceSpecific Audience = "specific"
)

// Valid reports whether a is a known audience selector.
func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceAdmins, AudienceUsers, AudienceSpecific:
		return true
	}
	return false
}

// Status is the lifecycle state of a notification.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusSent, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions. Sent and
// cancelled notifications stay that way; this is what guarantees
// at-most-once broadcast.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusCancelled
}

// Notification is the core domain model for a broadcast notification.
// Title and content are immutable after creation; only the lifecycle fields
// (status, counters, timestamps) change, and only through Storage.
type Notification struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Type             Type       `json:"type"`
	Audience         Audience   `json:"target_audience"`
	TargetAccountIDs []string   `json:"target_account_ids,omitempty"`
	Status           Status     `json:"status"`
	SentCount        int        `json:"sent_count"`
	ReadCount        int        `json:"read_count"`
	ScheduledFor     *time.Time `json:"scheduled_for,omitempty"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
	CreatedBy        string     `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CreateInput carries the caller-supplied fields for a new notification.
type CreateInput struct {
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Type             Type       `json:"type"`
	Audience         Audience   `json:"target_audience"`
	TargetAccountIDs []string   `json:"target_account_ids,omitempty"`
	ScheduledFor     *time.Time `json:"scheduled_for,omitempty"`
	CreatedBy        string     `json:"-"`
}

// Validate checks required fields and enum membership at the API boundary.
// Unknown enum values are rejected here rather than stored as loose strings.
func (in CreateInput) Validate() error {
	verr := core.NewValidationError()

	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		verr.Add("content", "is required")
	}
	if !in.Type.Valid() {
		verr.Add("type", "must be one of: announcement, update, maintenance, alert")
	}
	if !in.Audience.Valid() {
		verr.Add("target_audience", "must be one of: all, admins, users, specific")
	}
	if in.Audience == AudienceSpecific && len(in.TargetAccountIDs) == 0 {
		verr.Add("target_account_ids", "is required when target_audience is specific")
	}

	if !verr.IsEmpty() {
		return verr
	}
	return nil
}
