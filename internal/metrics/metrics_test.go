package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestGalleryMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"GalleryBuildsTotal", GalleryBuildsTotal},
		{"GalleryBuildDuration", GalleryBuildDuration},
		{"GalleryRowItems", GalleryRowItems},
		{"GalleryHeroSelected", GalleryHeroSelected},
		{"GalleryScanFailures", GalleryScanFailures},
		{"SidecarErrors", SidecarErrors},
		{"InferenceResolutions", InferenceResolutions},
		{"MediaFilesTotal", MediaFilesTotal},
		{"CategoriesEmpty", CategoriesEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3", "abc123", "go1.25")

	got := testutil.ToFloat64(AppInfo.WithLabelValues("1.2.3", "abc123", "go1.25"))
	if got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}

func TestInitializeMetricsRegistersLabels(t *testing.T) {
	InitializeMetrics([]string{"moments", "trips"})

	if n := testutil.CollectAndCount(GalleryRowItems); n < 4 {
		t.Errorf("GalleryRowItems series = %d, want at least 4", n)
	}
	if n := testutil.CollectAndCount(InferenceResolutions); n < 6 {
		t.Errorf("InferenceResolutions series = %d, want at least 6", n)
	}
	if n := testutil.CollectAndCount(FilesystemTimeouts); n < len(Volumes)*4 {
		t.Errorf("FilesystemTimeouts series = %d, want at least %d", n, len(Volumes)*4)
	}
}

func TestFilesystemObserver(t *testing.T) {
	o := NewFilesystemObserver()

	errorsBefore := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("hero", "stat"))
	o.ObserveOperation("hero", "stat", 0.01, errors.New("boom"))
	o.ObserveOperation("hero", "stat", 0.01, nil)
	if got := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("hero", "stat")); got != errorsBefore+1 {
		t.Errorf("FilesystemOperationErrors = %v, want %v", got, errorsBefore+1)
	}

	attemptsBefore := testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues("readdir", "gallery"))
	o.ObserveRetryAttempt("readdir", "gallery")
	if got := testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues("readdir", "gallery")); got != attemptsBefore+1 {
		t.Errorf("FilesystemRetryAttempts = %v, want %v", got, attemptsBefore+1)
	}

	timeoutsBefore := testutil.ToFloat64(FilesystemTimeouts.WithLabelValues("readdir", "gallery"))
	o.ObserveTimeout("readdir", "gallery")
	if got := testutil.ToFloat64(FilesystemTimeouts.WithLabelValues("readdir", "gallery")); got != timeoutsBefore+1 {
		t.Errorf("FilesystemTimeouts = %v, want %v", got, timeoutsBefore+1)
	}

	staleBefore := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "gallery"))
	o.ObserveStaleError("stat", "gallery")
	o.ObserveRetrySuccess("stat", "gallery")
	o.ObserveRetryFailure("stat", "gallery")
	o.ObserveRetryDuration("stat", "gallery", 0.2)
	if got := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "gallery")); got != staleBefore+1 {
		t.Errorf("FilesystemStaleErrors = %v, want %v", got, staleBefore+1)
	}
}
