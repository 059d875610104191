package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"media-reel/internal/filesystem"
	"media-reel/internal/gallery"
	"media-reel/internal/handlers"
	"media-reel/internal/logging"
	"media-reel/internal/memory"
	"media-reel/internal/metrics"
	"media-reel/internal/middleware"
	"media-reel/internal/startup"
)

const shutdownTimeout = 30 * time.Second

func runServe(configPath string) error {
	startTime := time.Now()

	memResult := memory.ConfigureFromEnv()

	startup.PrintBanner()
	startup.LogSystemInfo()
	logging.Info("  GOMEMLIMIT:      %s", memResult)
	logging.Info("")

	config, err := startup.LoadConfig(configPath)
	if err != nil {
		return err
	}
	startup.LogConfig(config)

	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	metrics.InitializeMetrics(config.CategoryKeys())
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"gallery": config.MediaDir,
		"hero":    config.HeroPath(),
	}))

	idx := newIndexer(config)
	h := handlers.New(idx, config)

	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           wrapHandler(router, config),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	var collector *metrics.Collector
	if config.MetricsEnabled {
		collector = metrics.NewCollector(idx, config.MetricsInterval, 0)
		collector.Start()

		metricsSrv = newMetricsServer(h, config.MetricsPort)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		handleShutdown(srv, metricsSrv, collector)
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet, http.MethodHead)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/gallery", h.GetGallery).Methods(http.MethodGet, http.MethodHead)

	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	return r
}

// wrapHandler applies the outer middleware chain: recover innermost, then
// access logging, then compression.
func wrapHandler(router http.Handler, config *startup.Config) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks

	handler := middleware.Recover(router)
	handler = middleware.Logger(loggingConfig)(handler)
	return middleware.Compression(middleware.DefaultCompressionConfig())(handler)
}

func newMetricsServer(h *handlers.Handlers, port string) *http.Server {
	m := http.NewServeMux()
	m.Handle("/metrics", h.MetricsHandler())
	m.HandleFunc("/health", h.LivenessCheck)

	return &http.Server{
		Addr:              ":" + port,
		Handler:           m,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if collector != nil {
		startup.ShutdownStep("Stopping metrics collector", func() error {
			collector.Stop()
			return nil
		})
	}
	if metricsSrv != nil {
		startup.ShutdownStep("Shutting down metrics server", func() error {
			return metricsSrv.Shutdown(ctx)
		})
	}
	startup.ShutdownStep("Shutting down HTTP server", func() error {
		return srv.Shutdown(ctx)
	})

	startup.LogShutdownComplete()
}

var _ metrics.StatsProvider = (*gallery.Indexer)(nil)
