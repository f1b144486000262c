// Package pg wires PostgreSQL connectivity for the console: pgxpool
// connection establishment with startup retries, env-driven configuration,
// goose migrations from an embedded filesystem, a health check closure and
// error classification helpers shared by the storage layers.
package pg
