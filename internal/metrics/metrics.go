package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_reel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_reel_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Gallery metrics
var (
	GalleryBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_gallery_builds_total",
			Help: "Total number of gallery builds",
		},
		[]string{"status"},
	)

	GalleryBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_reel_gallery_build_duration_seconds",
			Help:    "Time spent scanning categories and the hero directory",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	GalleryRowItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_reel_gallery_row_items",
			Help: "Number of items in the most recently built row",
		},
		[]string{"category", "kind"},
	)

	GalleryHeroSelected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_reel_gallery_hero_selected",
			Help: "Kind of the most recently selected hero (1 = selected)",
		},
		[]string{"kind"},
	)

	GalleryScanFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_gallery_scan_failures_total",
			Help: "Category or hero scans that degraded to an empty result",
		},
		[]string{"scope", "reason"},
	)

	SidecarErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_sidecar_errors_total",
			Help: "Sidecar files that could not be read or decoded",
		},
		[]string{"scope"},
	)

	InferenceResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_inference_resolutions_total",
			Help: "Item dates by the source that resolved them",
		},
		[]string{"source"},
	)
)

// Library metrics
var (
	MediaFilesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_reel_media_files_total",
			Help: "Total number of displayable media files by kind",
		},
		[]string{"kind"},
	)

	CategoriesEmpty = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_reel_categories_empty",
			Help: "Number of configured categories without displayable files",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_reel_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_filesystem_operation_errors_total",
			Help: "Filesystem operations that returned an error",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_filesystem_retry_attempts_total",
			Help: "Retries issued after a stale file handle error",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_filesystem_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_filesystem_retry_failures_total",
			Help: "Operations that still failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_filesystem_stale_errors_total",
			Help: "ESTALE errors observed",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_reel_filesystem_retry_duration_seconds",
			Help:    "Total time spent in an operation including retries",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "volume"},
	)

	FilesystemTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_reel_filesystem_timeouts_total",
			Help: "Filesystem operations abandoned after the scan timeout",
		},
		[]string{"operation", "volume"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_reel_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
