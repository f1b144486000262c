// Package cache provides a generic fixed-capacity LRU cache with an
// optional eviction callback for resource cleanup.
package cache
