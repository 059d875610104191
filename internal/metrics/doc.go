// Package metrics provides Prometheus instrumentation for media-reel.
//
// All metrics are registered on the default registry through promauto and are
// prefixed with "media_reel_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: requests by method, path and status
//   - HTTPRequestDuration: request latency by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## Gallery Metrics
//
// Recorded by every gallery build:
//   - GalleryBuildsTotal: builds by status (success/error)
//   - GalleryBuildDuration: time to scan all categories and the hero directory
//   - GalleryRowItems: items in the last built row, by category and kind
//   - GalleryHeroSelected: 1 for the kind of the selected hero, 0 otherwise
//   - GalleryScanFailures: category or hero scans that degraded, by reason
//   - SidecarErrors: unreadable or malformed sidecar files, by scope
//   - InferenceResolutions: which inference strategy produced an item's date
//
// ## Library Metrics
//
// Refreshed periodically by the Collector:
//   - MediaFilesTotal: media files by kind
//   - CategoriesEmpty: categories without any displayable file
//
// ## Filesystem Metrics
//
// Recorded through the filesystem.Observer implementation:
//   - FilesystemOperationDuration / FilesystemOperationErrors
//   - FilesystemRetryAttempts / FilesystemRetrySuccess / FilesystemRetryFailures
//   - FilesystemStaleErrors / FilesystemRetryDuration
//   - FilesystemTimeouts
package metrics
