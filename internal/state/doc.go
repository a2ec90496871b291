// Package state provides the thread-safe store shared by the background
// poller and the dashboard UI.
//
// The poller writes one Data batch per refresh; the UI reads immutable
// Snapshot copies at its own cadence. Updates are atomic: on a poll failure
// the previous data is retained and the error recorded, so the dashboard
// always has the most recent successful fetch to display alongside the
// failure indicator. Two consecutive failures mark the backend offline.
package state
