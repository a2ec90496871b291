// Package app wires configuration, the garden API client, the shared state
// store, the background poller, and the dashboard UI together.
//
// Run loads config, verifies credentials are present, does a quick pre-flight
// reachability check, launches the poller, and blocks in the UI until the
// context is cancelled. Poll failures are recoverable: they are logged and
// retried with exponential backoff (doubling per consecutive failure, capped
// at 30 seconds) while the UI keeps showing the last successful data.
package app
