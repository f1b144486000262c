// Package binder parses HTTP requests into typed values. Each binder
// processes a single source (JSON body, query string) so handlers can
// compose exactly the binding they need.
package binder
