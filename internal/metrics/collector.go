package metrics

import (
	"context"
	"time"

	"media-reel/internal/logging"
)

// StatsProvider reports library totals for the periodic collector.
type StatsProvider interface {
	Stats(ctx context.Context) (Stats, error)
}

// Stats holds the library totals gathered by one collection.
type Stats struct {
	TotalImages     int
	TotalVideos     int
	EmptyCategories int
}

// Collector periodically collects and updates library metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	timeout       time.Duration
	stopChan      chan struct{}
	doneChan      chan struct{}
}

// NewCollector creates a new metrics collector. Each collection is bounded by
// timeout; a zero timeout falls back to the interval.
func NewCollector(provider StatsProvider, interval, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = interval
	}
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		timeout:       timeout,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection and waits for the loop to exit.
func (c *Collector) Stop() {
	close(c.stopChan)
	<-c.doneChan
}

func (c *Collector) collectLoop() {
	defer close(c.doneChan)

	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats, err := c.statsProvider.Stats(ctx)
	if err != nil {
		logging.Warn("Metrics collection failed: %v", err)
		return
	}

	MediaFilesTotal.WithLabelValues("image").Set(float64(stats.TotalImages))
	MediaFilesTotal.WithLabelValues("video").Set(float64(stats.TotalVideos))
	CategoriesEmpty.Set(float64(stats.EmptyCategories))

	logging.Debug("Metrics collected: images=%d, videos=%d, empty categories=%d",
		stats.TotalImages, stats.TotalVideos, stats.EmptyCategories)
}
