package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"media-reel/internal/filesystem"
	"media-reel/internal/inference"
	"media-reel/internal/logging"
	"media-reel/internal/mediatypes"
	"media-reel/internal/metrics"
	"media-reel/internal/sidecar"
	"media-reel/internal/workers"
)

var (
	// ErrMediaRoot means the media root is missing, unreadable or not a
	// directory.
	ErrMediaRoot = errors.New("media root unavailable")

	// ErrPanic wraps a panic recovered while building the gallery.
	ErrPanic = errors.New("gallery build panicked")
)

// Defaults applied by New.
const (
	DefaultSidecarName      = "meta.json"
	DefaultHeroDir          = "hero"
	DefaultGalleryURLPrefix = "/gallery"
	DefaultHeroURLPrefix    = "/hero"
)

// Options configures an Indexer.
type Options struct {
	// MediaDir is the root holding the category and hero directories.
	MediaDir string
	// Categories is the row table. Defaults to DefaultCategories.
	Categories []Category
	// HeroDir is the hero directory name under MediaDir.
	HeroDir string
	// SidecarName is the sidecar filename in every directory.
	SidecarName string
	// GalleryURLPrefix is prepended to "/<key>/<file>" for row items.
	GalleryURLPrefix string
	// HeroURLPrefix is prepended to "/<file>" for the hero.
	HeroURLPrefix string
	// Workers bounds concurrent category scans. Zero sizes from the CPU count.
	Workers int
	// Retry bounds every filesystem call, including the per-directory timeout.
	Retry filesystem.RetryConfig
	// Engine infers dates and titles. Defaults to an engine that falls back
	// to filesystem times.
	Engine *inference.Engine
}

// Indexer builds Gallery values from the media directory. It holds no
// mutable state and is safe for concurrent use.
type Indexer struct {
	opts   Options
	engine *inference.Engine
	loader *sidecar.Loader
}

// New returns an Indexer with defaults applied to opts.
func New(opts Options) *Indexer {
	if len(opts.Categories) == 0 {
		opts.Categories = DefaultCategories
	}
	if opts.HeroDir == "" {
		opts.HeroDir = DefaultHeroDir
	}
	if opts.SidecarName == "" {
		opts.SidecarName = DefaultSidecarName
	}
	if opts.GalleryURLPrefix == "" {
		opts.GalleryURLPrefix = DefaultGalleryURLPrefix
	}
	if opts.HeroURLPrefix == "" {
		opts.HeroURLPrefix = DefaultHeroURLPrefix
	}
	if opts.Retry == (filesystem.RetryConfig{}) {
		opts.Retry = filesystem.DefaultRetryConfig()
	}
	opts.Workers = workers.Resolve(opts.Workers, len(opts.Categories))

	engine := opts.Engine
	if engine == nil {
		engine = inference.New(inference.Options{Stat: StatFunc(opts.Retry)})
	}

	return &Indexer{
		opts:   opts,
		engine: engine,
		loader: sidecar.NewLoader(opts.Retry),
	}
}

// StatFunc adapts the retrying stat helper for the inference engine.
func StatFunc(retry filesystem.RetryConfig) inference.StatFunc {
	return func(ctx context.Context, path string) (filesystem.FileTimes, error) {
		return filesystem.StatTimesWithRetry(ctx, path, retry)
	}
}

// OpenFunc adapts the retrying open helper for the inference engine.
func OpenFunc(retry filesystem.RetryConfig) inference.OpenFunc {
	return func(ctx context.Context, path string) (io.ReadSeekCloser, error) {
		return filesystem.OpenWithRetry(ctx, path, retry)
	}
}

// Categories returns the configured category table.
func (idx *Indexer) Categories() []Category { return idx.opts.Categories }

// MediaDir returns the media root.
func (idx *Indexer) MediaDir() string { return idx.opts.MediaDir }

// CheckRoot verifies that the media root is a readable directory.
func (idx *Indexer) CheckRoot(ctx context.Context) error {
	root := idx.opts.MediaDir
	info, err := filesystem.StatWithRetry(ctx, root, idx.opts.Retry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMediaRoot, root)
	}

	f, err := filesystem.OpenWithRetry(ctx, root, idx.opts.Retry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaRoot, err)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrMediaRoot, err)
	}
	return nil
}

// Build scans the media directory and returns the gallery. Category and hero
// failures degrade to empty rows and a missing hero; an error is returned only
// when the media root is unusable or the build panics.
func (idx *Indexer) Build(ctx context.Context) (g Gallery, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Gallery build panicked: %v\n%s", r, debug.Stack())
			g, err = Gallery{}, fmt.Errorf("%w: %v", ErrPanic, r)
		}

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.GalleryBuildsTotal.WithLabelValues(status).Inc()
		metrics.GalleryBuildDuration.Observe(time.Since(start).Seconds())
	}()

	if err := idx.CheckRoot(ctx); err != nil {
		logging.Error("Failed to read gallery: %v", err)
		return Gallery{}, err
	}

	rows := make([]Row, len(idx.opts.Categories))
	var hero *Hero

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(idx.opts.Workers + 1)

	group.Go(func() (err error) {
		defer recoverInto(&err)
		hero = idx.resolveHero(gctx)
		return nil
	})
	for i, c := range idx.opts.Categories {
		group.Go(func() (err error) {
			defer recoverInto(&err)
			rows[i] = idx.buildRow(gctx, c)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		logging.Error("Failed to read gallery: %v", err)
		return Gallery{}, err
	}

	recordHero(hero)
	logging.Debug("Gallery built in %v: %d rows, hero=%t", time.Since(start).Round(time.Millisecond), len(rows), hero != nil)
	return Gallery{Rows: rows, Hero: hero}, nil
}

// recoverInto turns a panic in a scan goroutine into an ErrPanic error.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		logging.Error("Gallery scan panicked: %v\n%s", r, debug.Stack())
		*err = fmt.Errorf("%w: %v", ErrPanic, r)
	}
}

// Stats counts the media files in every category without running inference.
// It is used by the periodic metrics collector.
func (idx *Indexer) Stats(ctx context.Context) (metrics.Stats, error) {
	if err := idx.CheckRoot(ctx); err != nil {
		return metrics.Stats{}, err
	}

	var stats metrics.Stats
	for _, c := range idx.opts.Categories {
		if err := ctx.Err(); err != nil {
			return metrics.Stats{}, err
		}

		entries, err := idx.readDir(ctx, idx.categoryDir(c))
		if err != nil {
			stats.EmptyCategories++
			continue
		}

		listing := newListing(entries)
		if len(listing.media) == 0 {
			stats.EmptyCategories++
		}
		for _, name := range listing.media {
			switch kindOf(name) {
			case mediatypes.KindImage:
				stats.TotalImages++
			case mediatypes.KindVideo:
				stats.TotalVideos++
			}
		}
	}
	return stats, nil
}

func (idx *Indexer) readDir(ctx context.Context, dir string) ([]os.DirEntry, error) {
	return filesystem.ReadDirWithRetry(ctx, dir, idx.opts.Retry)
}

func (idx *Indexer) categoryDir(c Category) string {
	return filepath.Join(idx.opts.MediaDir, c.Key)
}

func (idx *Indexer) heroDir() string {
	return filepath.Join(idx.opts.MediaDir, idx.opts.HeroDir)
}

// scanFailed logs and counts a directory that could not be listed. A missing
// directory is expected and only logged at debug level.
func scanFailed(scope, dir string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logging.Debug("Skipping %s: %s does not exist", scope, dir)
	case errors.Is(err, filesystem.ErrTimeout):
		logging.Warn("Skipping %s: listing %s timed out", scope, dir)
		metrics.GalleryScanFailures.WithLabelValues(scope, "timeout").Inc()
	default:
		logging.Warn("Skipping %s: cannot read %s: %v", scope, dir, err)
		metrics.GalleryScanFailures.WithLabelValues(scope, "unreadable").Inc()
	}
}

func sidecarFailed(scope string, err error) {
	if errors.Is(err, sidecar.ErrMalformedSidecar) {
		logging.Warn("Ignoring sidecar for %s: %v", scope, err)
	} else {
		logging.Warn("Cannot read sidecar for %s: %v", scope, err)
	}
	metrics.SidecarErrors.WithLabelValues(scope).Inc()
}
