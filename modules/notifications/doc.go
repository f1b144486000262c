// Package notifications implements the console's broadcast notification
// subsystem: administrators compose announcements, updates, maintenance
// notices and alerts, target an audience, and broadcast them to recipient
// inboxes either immediately or on a schedule.
//
// The package is split along the lifecycle:
//
//   - Service creates, fetches and deletes notifications.
//   - Engine resolves the audience, fans the broadcast out to every
//     recipient with bounded concurrency, and commits the sent status with
//     a compare-and-set so a notification goes out at most once.
//   - Query serves the paginated, filterable admin listing, newest first.
//   - Inbox is the recipient-facing side: per-account entries written at
//     fan-out time, with per-account read tracking that feeds the
//     notification's aggregate read count.
//   - Scheduler polls for scheduled notifications whose time has come and
//     sends them through the Engine.
//
// Storage and InboxStore have PostgreSQL, MongoDB and in-memory
// implementations; the directory of accounts is an external collaborator
// consumed through the directory.Directory interface and evaluated fresh
// at send time.
//
// Status transitions are linear and terminal states are final:
//
//	draft -> scheduled -> sent
//	draft | scheduled  -> cancelled
//
// Per-recipient delivery failures are logged and excluded from the sent
// count but never abort a broadcast.
package notifications
