package notifications

import "errors"

var (
	// ErrNotificationNotFound is returned when the requested notification does not exist.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidStatus is returned on an illegal lifecycle transition, such
	// as sending a notification that is already sent or cancelled.
	ErrInvalidStatus = errors.New("notification status does not allow this transition")

	// ErrEmptyAudience is returned when a mandatory audience resolves to no
	// accounts. Only the "all" audience tolerates an empty directory.
	ErrEmptyAudience = errors.New("target audience resolved to no accounts")

	// ErrInboxEntryNotFound is returned when an inbox entry does not exist
	// for the requesting account.
	ErrInboxEntryNotFound = errors.New("inbox entry not found")
)
