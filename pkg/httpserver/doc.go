// Package httpserver wraps net/http.Server with graceful shutdown on
// context cancellation or termination signals, functional options,
// env-driven configuration and start/stop lifecycle hooks.
package httpserver
