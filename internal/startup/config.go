package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"media-reel/internal/gallery"
	"media-reel/internal/inference"
	"media-reel/internal/logging"
)

// Defaults for settings that are not set in the config file or environment.
const (
	DefaultMediaDir        = "./public"
	DefaultPort            = "8080"
	DefaultMetricsPort     = "9090"
	DefaultMetricsInterval = 5 * time.Minute
	DefaultScanTimeout     = 5 * time.Second
	DefaultTimezone        = "local"
)

// Config holds all application configuration
type Config struct {
	// ConfigFile is the TOML file the values were read from, if any.
	ConfigFile string

	MediaDir         string
	Port             string
	MetricsPort      string
	MetricsEnabled   bool
	MetricsInterval  time.Duration
	ScanTimeout      time.Duration
	ScanWorkers      int
	UnixFutureSkew   time.Duration
	EmbeddedDates    bool
	Timezone         string
	SidecarName      string
	HeroDir          string
	GalleryURLPrefix string
	HeroURLPrefix    string
	LogHealthChecks  bool
	LogLevel         string
	Categories       []gallery.Category

	// Location is Timezone resolved.
	Location *time.Location
}

// fileConfig mirrors Config in the TOML file. Pointer fields distinguish an
// unset key from a zero value.
type fileConfig struct {
	MediaDir         *string            `toml:"media_dir"`
	Port             *string            `toml:"port"`
	MetricsPort      *string            `toml:"metrics_port"`
	MetricsEnabled   *bool              `toml:"metrics_enabled"`
	MetricsInterval  *string            `toml:"metrics_interval"`
	ScanTimeout      *string            `toml:"scan_timeout"`
	ScanWorkers      *int               `toml:"scan_workers"`
	UnixFutureSkew   *string            `toml:"unix_future_skew"`
	EmbeddedDates    *bool              `toml:"embedded_dates"`
	Timezone         *string            `toml:"timezone"`
	SidecarName      *string            `toml:"sidecar_name"`
	HeroDir          *string            `toml:"hero_dir"`
	GalleryURLPrefix *string            `toml:"gallery_url_prefix"`
	HeroURLPrefix    *string            `toml:"hero_url_prefix"`
	LogHealthChecks  *bool              `toml:"log_health_checks"`
	LogLevel         *string            `toml:"log_level"`
	Categories       []gallery.Category `toml:"categories"`
}

// ErrConfig is wrapped by every configuration error.
var ErrConfig = errors.New("invalid configuration")

// LoadConfig reads the optional TOML file at path (or CONFIG_FILE when path
// is empty) and overlays environment variables. Invalid durations, numbers and
// time zones are logged and replaced by defaults; an unreadable file or an
// invalid category table is an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	var fc fileConfig
	if path != "" {
		md, err := toml.DecodeFile(path, &fc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
		}
		for _, key := range md.Undecoded() {
			logging.Warn("Unknown key %q in %s", key.String(), path)
		}
	}

	cfg := &Config{
		ConfigFile:       path,
		MediaDir:         getEnv("MEDIA_DIR", deref(fc.MediaDir, DefaultMediaDir)),
		Port:             getEnv("PORT", deref(fc.Port, DefaultPort)),
		MetricsPort:      getEnv("METRICS_PORT", deref(fc.MetricsPort, DefaultMetricsPort)),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", deref(fc.MetricsEnabled, true)),
		MetricsInterval:  getEnvDuration("METRICS_INTERVAL", fileDuration("metrics_interval", fc.MetricsInterval, DefaultMetricsInterval)),
		ScanTimeout:      getEnvDuration("SCAN_TIMEOUT", fileDuration("scan_timeout", fc.ScanTimeout, DefaultScanTimeout)),
		ScanWorkers:      getEnvInt("SCAN_WORKERS", deref(fc.ScanWorkers, 0)),
		UnixFutureSkew:   getEnvDuration("UNIX_FUTURE_SKEW", fileDuration("unix_future_skew", fc.UnixFutureSkew, inference.DefaultFutureSkew)),
		EmbeddedDates:    getEnvBool("EMBEDDED_DATES", deref(fc.EmbeddedDates, false)),
		Timezone:         getEnv("TIMEZONE", deref(fc.Timezone, DefaultTimezone)),
		SidecarName:      getEnv("SIDECAR_NAME", deref(fc.SidecarName, gallery.DefaultSidecarName)),
		HeroDir:          getEnv("HERO_DIR", deref(fc.HeroDir, gallery.DefaultHeroDir)),
		GalleryURLPrefix: getEnv("GALLERY_URL_PREFIX", deref(fc.GalleryURLPrefix, gallery.DefaultGalleryURLPrefix)),
		HeroURLPrefix:    getEnv("HERO_URL_PREFIX", deref(fc.HeroURLPrefix, gallery.DefaultHeroURLPrefix)),
		LogHealthChecks:  getEnvBool("LOG_HEALTH_CHECKS", deref(fc.LogHealthChecks, true)),
		LogLevel:         getEnv("LOG_LEVEL", deref(fc.LogLevel, "")),
		Categories:       fc.Categories,
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = gallery.DefaultCategories
	}
	if err := gallery.ValidateCategories(cfg.Categories, cfg.HeroDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if strings.ContainsAny(cfg.HeroDir, `/\`) || cfg.HeroDir == "." || cfg.HeroDir == ".." {
		return nil, fmt.Errorf("%w: HERO_DIR %q must be a single path segment", ErrConfig, cfg.HeroDir)
	}
	if strings.ContainsAny(cfg.SidecarName, `/\`) {
		return nil, fmt.Errorf("%w: SIDECAR_NAME %q must be a file name", ErrConfig, cfg.SidecarName)
	}

	if cfg.LogLevel != "" {
		level, ok := logging.ParseLevel(cfg.LogLevel)
		if !ok {
			logging.Warn("Invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		}
		if os.Getenv("DEBUG") == "" {
			logging.SetLevel(level)
		}
	}

	cfg.Location = loadLocation(cfg.Timezone)

	mediaDir, err := filepath.Abs(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media directory path: %w", err)
	}
	cfg.MediaDir = mediaDir

	return cfg, nil
}

// CategoryKeys returns the configured category keys in order.
func (c *Config) CategoryKeys() []string {
	return gallery.Keys(c.Categories)
}

// HeroPath returns the absolute hero directory.
func (c *Config) HeroPath() string {
	return filepath.Join(c.MediaDir, c.HeroDir)
}

// LogConfig prints the effective configuration.
func LogConfig(c *Config) {
	logSection("CONFIGURATION")
	if c.ConfigFile != "" {
		logging.Info("  CONFIG_FILE:         %s", c.ConfigFile)
	}
	logging.Info("  MEDIA_DIR:           %s", c.MediaDir)
	logging.Info("  PORT:                %s", c.Port)
	logging.Info("  METRICS_PORT:        %s", c.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", c.MetricsEnabled)
	logging.Info("  METRICS_INTERVAL:    %v", c.MetricsInterval)
	logging.Info("  SCAN_TIMEOUT:        %v", c.ScanTimeout)
	if c.ScanWorkers > 0 {
		logging.Info("  SCAN_WORKERS:        %d", c.ScanWorkers)
	} else {
		logging.Info("  SCAN_WORKERS:        auto")
	}
	logging.Info("  UNIX_FUTURE_SKEW:    %v", c.UnixFutureSkew)
	logging.Info("  EMBEDDED_DATES:      %v", c.EmbeddedDates)
	logging.Info("  TIMEZONE:            %s", c.Location)
	logging.Info("  SIDECAR_NAME:        %s", c.SidecarName)
	logging.Info("  HERO_DIR:            %s", c.HeroDir)
	logging.Info("  GALLERY_URL_PREFIX:  %s", c.GalleryURLPrefix)
	logging.Info("  HERO_URL_PREFIX:     %s", c.HeroURLPrefix)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", c.LogHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())
	logging.Info("")
	logging.Info("  Categories:")
	for _, cat := range c.Categories {
		logging.Info("    %-10s %s", cat.Key, cat.Title)
	}
	logging.Info("")

	checkMediaDir(c)
}

// checkMediaDir warns about missing directories without failing startup;
// the gallery endpoint reports them per request.
func checkMediaDir(c *Config) {
	info, err := os.Stat(c.MediaDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logging.Warn("  Media directory %s does not exist", c.MediaDir)
		return
	case err != nil:
		logging.Warn("  Media directory %s: %v", c.MediaDir, err)
		return
	case !info.IsDir():
		logging.Warn("  Media directory %s is not a directory", c.MediaDir)
		return
	}
	logging.Info("  [OK] Media directory exists")

	if !logging.IsDebugEnabled() {
		return
	}
	for _, key := range append(c.CategoryKeys(), c.HeroDir) {
		entries, err := os.ReadDir(filepath.Join(c.MediaDir, key))
		if err != nil {
			logging.Debug("    %-10s missing", key)
			continue
		}
		logging.Debug("    %-10s %d entries", key, len(entries))
	}
}

func loadLocation(name string) *time.Location {
	if name == "" || strings.EqualFold(name, DefaultTimezone) {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.Warn("Invalid TIMEZONE %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func fileDuration(key string, value *string, fallback time.Duration) time.Duration {
	if value == nil {
		return fallback
	}
	d, err := time.ParseDuration(*value)
	if err != nil || d <= 0 {
		logging.Warn("Invalid %s %q in config file, using default: %v", key, *value, fallback)
		return fallback
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		logging.Warn("Invalid duration for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
