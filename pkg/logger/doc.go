// Package logger provides a thin factory around log/slog with functional
// options, consistent attribute constructors, and transparent injection of
// context values into every record.
//
// New builds a *slog.Logger from Option functions selecting format, level,
// static attributes and ContextExtractor callbacks. The helpers in attr.go
// (Error, NotificationID, AccountID, ...) keep attribute naming consistent
// across the codebase.
package logger
