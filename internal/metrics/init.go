package metrics

// Volumes are the labels the filesystem observer reports for paths.
var Volumes = []string{"gallery", "hero", "unknown"}

// InitializeMetrics pre-populates the expected label combinations so that
// every metric is exported from the first Prometheus scrape.
func InitializeMetrics(categories []string) {
	for _, status := range []string{"success", "error"} {
		GalleryBuildsTotal.WithLabelValues(status)
	}

	for _, category := range categories {
		for _, kind := range []string{"image", "video"} {
			GalleryRowItems.WithLabelValues(category, kind)
		}
		for _, reason := range []string{"timeout", "unreadable"} {
			GalleryScanFailures.WithLabelValues(category, reason)
		}
		SidecarErrors.WithLabelValues(category)
	}
	for _, reason := range []string{"timeout", "unreadable"} {
		GalleryScanFailures.WithLabelValues("hero", reason)
	}
	SidecarErrors.WithLabelValues("hero")

	for _, kind := range []string{"image", "video"} {
		GalleryHeroSelected.WithLabelValues(kind)
		MediaFilesTotal.WithLabelValues(kind)
	}

	for _, source := range []string{"sidecar", "calendar", "unix", "embedded", "filesystem", "none"} {
		InferenceResolutions.WithLabelValues(source)
	}

	for _, vol := range Volumes {
		for _, op := range []string{"stat", "readdir", "read", "open"} {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
			FilesystemTimeouts.WithLabelValues(op, vol)
		}
	}
}
