package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"
)

type recordingObserver struct {
	mu       sync.Mutex
	ops      []string
	attempts int
	success  int
	failures int
	stale    int
	timeouts int
}

func (r *recordingObserver) ObserveOperation(volume, operation string, _ float64, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, volume+":"+operation)
}

func (r *recordingObserver) ObserveRetryAttempt(string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
}

func (r *recordingObserver) ObserveRetrySuccess(string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
}

func (r *recordingObserver) ObserveRetryFailure(string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *recordingObserver) ObserveRetryDuration(string, string, float64) {}

func (r *recordingObserver) ObserveStaleError(string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale++
}

func (r *recordingObserver) ObserveTimeout(string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeouts++
}

func installObserver(t *testing.T) *recordingObserver {
	t.Helper()
	obs := &recordingObserver{}
	prev := defaultObserver
	SetObserver(obs)
	t.Cleanup(func() { SetObserver(prev) })
	return obs
}

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     4 * time.Millisecond,
		Timeout:        time.Second,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
	if config.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", config.Timeout)
	}
	if config.VolumeResolver != nil {
		t.Error("VolumeResolver should be nil by default")
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: os.ErrNotExist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadDirWithRetry_SortedListing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.jpg", "a.mp4", "b.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := ReadDirWithRetry(context.Background(), dir, fastConfig())
	if err != nil {
		t.Fatalf("ReadDirWithRetry() error = %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"a.mp4", "b.png", "c.jpg"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestReadDirWithRetry_NotExist(t *testing.T) {
	obs := installObserver(t)

	_, err := ReadDirWithRetry(context.Background(), filepath.Join(t.TempDir(), "missing"), fastConfig())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
	if obs.attempts != 0 {
		t.Errorf("retry attempts = %d, want 0 for non-NFS errors", obs.attempts)
	}
}

func TestStatWithRetry_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.jpg")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := StatWithRetry(context.Background(), path, fastConfig())
	if err != nil {
		t.Fatalf("StatWithRetry() error = %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Size() = %d, want 4", info.Size())
	}
}

func TestReadFileWithRetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	if err := os.WriteFile(path, []byte(`{"a":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileWithRetry(context.Background(), path, fastConfig())
	if err != nil {
		t.Fatalf("ReadFileWithRetry() error = %v", err)
	}
	if string(data) != `{"a":{}}` {
		t.Errorf("data = %q", data)
	}
}

func TestWithRetry_RetriesStaleHandles(t *testing.T) {
	obs := installObserver(t)

	calls := 0
	got, err := withRetry(context.Background(), "stat", "/media/x", fastConfig(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, &os.PathError{Op: "stat", Path: "/media/x", Err: syscall.ESTALE}
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("withRetry() error = %v", err)
	}
	if got != 42 {
		t.Errorf("value = %d, want 42", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if obs.stale != 2 || obs.attempts != 2 || obs.success != 1 {
		t.Errorf("stale=%d attempts=%d success=%d, want 2/2/1", obs.stale, obs.attempts, obs.success)
	}
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	obs := installObserver(t)

	calls := 0
	_, err := withRetry(context.Background(), "readdir", "/media", fastConfig(), func() (int, error) {
		calls++
		return 0, syscall.ESTALE
	})

	if !errors.Is(err, syscall.ESTALE) {
		t.Fatalf("error = %v, want ESTALE", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (1 + 3 retries)", calls)
	}
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
}

func TestWithRetry_Timeout(t *testing.T) {
	obs := installObserver(t)

	config := fastConfig()
	config.Timeout = 20 * time.Millisecond

	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := withRetry(context.Background(), "readdir", "/slow", config, func() (int, error) {
		<-release
		return 1, nil
	})

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("withRetry took %v, expected to give up near the 20ms timeout", elapsed)
	}
	if obs.timeouts != 1 {
		t.Errorf("timeouts = %d, want 1", obs.timeouts)
	}
}

func TestWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := withRetry(ctx, "stat", "/x", fastConfig(), func() (int, error) {
		called = true
		return 0, nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("cancellation should not be reported as a timeout")
	}
	if called {
		t.Error("fn should not run with a cancelled context")
	}
}

func TestWithRetry_NoTimeout(t *testing.T) {
	config := fastConfig()
	config.Timeout = 0

	got, err := withRetry(context.Background(), "stat", "/x", config, func() (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Errorf("withRetry() = (%q, %v), want (ok, nil)", got, err)
	}
}

func TestRetryConfig_ExponentialBackoffCapped(t *testing.T) {
	config := RetryConfig{
		MaxRetries:     5,
		InitialBackoff: 2 * time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Timeout:        time.Second,
	}

	var stamps []time.Time
	_, _ = withRetry(context.Background(), "stat", "/x", config, func() (int, error) {
		stamps = append(stamps, time.Now())
		return 0, syscall.ESTALE
	})

	if len(stamps) != 6 {
		t.Fatalf("calls = %d, want 6", len(stamps))
	}
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < time.Millisecond {
			t.Errorf("gap %d = %v, expected backoff between attempts", i, gap)
		}
	}
}

func TestStatTimesWithRetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	ft, err := StatTimesWithRetry(context.Background(), path, fastConfig())
	if err != nil {
		t.Fatalf("StatTimesWithRetry() error = %v", err)
	}
	if !ft.Modify.Equal(mtime) {
		t.Errorf("Modify = %v, want %v", ft.Modify, mtime)
	}
	if _, ok := ft.First(); !ok {
		t.Error("First() reported no time for an existing file")
	}
}

func TestStatTimesWithRetry_NotExist(t *testing.T) {
	_, err := StatTimesWithRetry(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"), fastConfig())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestFileTimesFirst(t *testing.T) {
	birth := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	mod := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	change := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		ft     FileTimes
		want   time.Time
		wantOK bool
	}{
		{"birth wins", FileTimes{Birth: birth, Modify: mod, Change: change}, birth, true},
		{"modify without birth", FileTimes{Modify: mod, Change: change}, mod, true},
		{"change only", FileTimes{Change: change}, change, true},
		{"nothing", FileTimes{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ft.First()
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("First() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOpenWithRetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("ftyp"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenWithRetry(context.Background(), path, fastConfig())
	if err != nil {
		t.Fatalf("OpenWithRetry() error = %v", err)
	}
	defer f.Close()

	buf := make([]byte, 4)
	if _, err := f.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(buf) != "ftyp" {
		t.Errorf("content = %q, want ftyp", buf)
	}
}
