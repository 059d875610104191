package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type mockStatsProvider struct {
	mu    sync.Mutex
	stats Stats
	err   error
	calls int
}

func (m *mockStatsProvider) Stats(_ context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.stats, m.err
}

func (m *mockStatsProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestNewCollector(t *testing.T) {
	c := NewCollector(&mockStatsProvider{}, time.Minute, 0)
	if c == nil {
		t.Fatal("NewCollector returned nil")
	}
	if c.timeout != time.Minute {
		t.Errorf("timeout = %v, want interval fallback of 1m", c.timeout)
	}
}

func TestCollectorCollectUpdatesGauges(t *testing.T) {
	provider := &mockStatsProvider{stats: Stats{TotalImages: 12, TotalVideos: 3, EmptyCategories: 1}}
	c := NewCollector(provider, time.Hour, time.Second)

	c.collect()

	if got := testutil.ToFloat64(MediaFilesTotal.WithLabelValues("image")); got != 12 {
		t.Errorf("images = %v, want 12", got)
	}
	if got := testutil.ToFloat64(MediaFilesTotal.WithLabelValues("video")); got != 3 {
		t.Errorf("videos = %v, want 3", got)
	}
	if got := testutil.ToFloat64(CategoriesEmpty); got != 1 {
		t.Errorf("empty categories = %v, want 1", got)
	}
}

func TestCollectorCollectKeepsGaugesOnError(t *testing.T) {
	MediaFilesTotal.WithLabelValues("image").Set(7)

	provider := &mockStatsProvider{err: errors.New("media root unreadable")}
	c := NewCollector(provider, time.Hour, time.Second)
	c.collect()

	if got := testutil.ToFloat64(MediaFilesTotal.WithLabelValues("image")); got != 7 {
		t.Errorf("images = %v, want unchanged 7", got)
	}
}

func TestCollectorNilProvider(t *testing.T) {
	c := NewCollector(nil, time.Hour, time.Second)
	c.collect()
}

func TestCollectorStartStop(t *testing.T) {
	provider := &mockStatsProvider{}
	c := NewCollector(provider, 10*time.Millisecond, time.Second)

	c.Start()
	deadline := time.Now().Add(2 * time.Second)
	for provider.callCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Stop()

	if provider.callCount() < 2 {
		t.Errorf("collector ran %d times, want at least 2", provider.callCount())
	}

	calls := provider.callCount()
	time.Sleep(30 * time.Millisecond)
	if provider.callCount() != calls {
		t.Error("collector kept running after Stop")
	}
}
