package handlers

import (
	"context"
	"time"

	"media-reel/internal/gallery"
	"media-reel/internal/startup"
)

// GalleryBuilder is the part of *gallery.Indexer the handlers depend on.
type GalleryBuilder interface {
	Build(ctx context.Context) (gallery.Gallery, error)
	CheckRoot(ctx context.Context) error
}

type Handlers struct {
	indexer   GalleryBuilder
	mediaDir  string
	timeout   time.Duration
	startTime time.Time
}

func New(idx GalleryBuilder, config *startup.Config) *Handlers {
	return &Handlers{
		indexer:   idx,
		mediaDir:  config.MediaDir,
		timeout:   config.ScanTimeout,
		startTime: time.Now(),
	}
}
