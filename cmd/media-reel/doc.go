// Package main provides the media-reel command.
//
// media-reel turns a directory of media files into a JSON gallery: one row per
// configured category directory plus an optional hero banner. Each item gets
// a display title and a date inferred from its filename, embedded metadata or
// filesystem times, with per-directory meta.json overrides.
//
// # Commands
//
//   - media-reel serve (the default): run the HTTP server
//   - media-reel index [--pretty]: scan once and print the gallery JSON
//   - media-reel version: print build information
//
// All commands accept --config to read a TOML file; environment variables
// override its values. See [media-reel/internal/startup] for the settings.
//
// # HTTP Server
//
// The main server (PORT, default 8080) exposes:
//
//   - GET /api/gallery: the gallery payload, rebuilt on every request
//   - GET /health, /healthz: status JSON
//   - GET /livez: liveness probe
//   - GET /readyz: 200 when the media directory is readable
//   - GET /version: build information
//
// When METRICS_ENABLED is true a second server on METRICS_PORT (default 9090)
// serves /metrics for Prometheus, and a background collector refreshes the
// library gauges every METRICS_INTERVAL.
//
// # Graceful Shutdown
//
// On SIGINT or SIGTERM the collector stops, then the metrics server and the
// main server shut down with a 30 second deadline.
package main
