// Package directory exposes the console's registered accounts to other
// modules. Audience resolution for notification broadcasts reads through
// the Directory interface so membership reflects current roles at send
// time rather than roles captured when a notification was drafted.
package directory
