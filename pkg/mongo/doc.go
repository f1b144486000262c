// Package mongo provides MongoDB client construction with env-driven
// configuration, startup retries and a health check closure. It backs the
// document-store variant of the notification storage layer.
package mongo
