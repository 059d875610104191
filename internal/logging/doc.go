// Package logging provides a small leveled logger for media-reel.
//
// Levels, from most to least verbose:
//   - DEBUG: per-file inference decisions, skipped entries
//   - INFO: startup, configuration, server lifecycle
//   - WARN: degraded scans (timeouts, unreadable directories, bad sidecars)
//   - ERROR: failed gallery builds and response encoding errors
//   - FATAL: startup failures that terminate the process
//
// The initial level comes from DEBUG or LOG_LEVEL. The configuration layer
// may override it with SetLevel once the TOML file has been read.
package logging
