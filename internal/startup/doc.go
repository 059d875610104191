// Package startup handles configuration loading and startup/shutdown logging.
//
// # Configuration
//
// [LoadConfig] reads an optional TOML file (the --config flag or CONFIG_FILE)
// and then applies environment variables, which take precedence:
//
//   - MEDIA_DIR: root holding the category and hero directories (default: ./public)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: enable or disable the metrics server (default: true)
//   - METRICS_INTERVAL: library gauge refresh interval (default: 5m)
//   - SCAN_TIMEOUT: bound on each directory listing or stat (default: 5s)
//   - SCAN_WORKERS: concurrent category scans (default: 2 per CPU, capped at the category count)
//   - UNIX_FUTURE_SKEW: how far past now a filename Unix timestamp may lie (default: 168h)
//   - EMBEDDED_DATES: read EXIF and MP4 capture times (default: false)
//   - TIMEZONE: IANA zone for calendar dates and formatting (default: local)
//   - SIDECAR_NAME: per-directory override file (default: meta.json)
//   - HERO_DIR: hero directory under MEDIA_DIR (default: hero)
//   - GALLERY_URL_PREFIX: URL prefix for row items (default: /gallery)
//   - HERO_URL_PREFIX: URL prefix for the hero (default: /hero)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: log probe requests (default: true)
//
// The file uses the lower-case names of the same settings and may replace the
// row table:
//
//	media_dir = "/srv/reel"
//	scan_timeout = "2s"
//
//	[[categories]]
//	key = "moments"
//	title = "Top Moments"
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [PrintBanner] and [LogSystemInfo]: process start
//   - [LogConfig]: effective configuration and media directory check
//   - [LogHTTPRoutes]: registered HTTP routes (debug level)
//   - [LogServerStarted]: server endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownStepComplete], [LogShutdownComplete]: graceful shutdown
package startup
