// Package http exposes the planner over stdlib ServeMux: a reader API for the
// notebook front end (month summaries, day entries, decorations) and an admin
// API for entry, media, and decoration writes. Writes are idempotent by
// entity id.
package http
