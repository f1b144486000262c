// Package core provides the HTTP response vocabulary shared by all console
// modules: a Response interface, a JSON envelope with a uniform error shape,
// field-level validation errors, and a catalogue of HTTPError values keyed
// for translation.
package core
