package inference

import (
	"context"
	"io"
	"time"

	"media-reel/internal/filesystem"
	"media-reel/internal/mediatypes"
)

// Source names the strategy that resolved a date.
type Source string

const (
	// SourceCalendar is a yyyy-mm-dd or dd-mm-yyyy run in the filename.
	SourceCalendar Source = "calendar"
	// SourceUnix is a 10-digit epoch-seconds run in the filename.
	SourceUnix Source = "unix"
	// SourceEmbedded is EXIF or MP4 capture metadata.
	SourceEmbedded Source = "embedded"
	// SourceFilesystem is the file's birth, modification or change time.
	SourceFilesystem Source = "filesystem"
	// SourceNone means nothing resolved.
	SourceNone Source = "none"
)

// DefaultFutureSkew is how far past "now" a Unix timestamp may lie.
const DefaultFutureSkew = 7 * 24 * time.Hour

// Input describes the file being inferred.
type Input struct {
	// Name is the filename including extension.
	Name string
	// Path is the absolute path used for metadata lookups.
	Path string
}

// Stem returns the filename without its extension.
func (in Input) Stem() string { return mediatypes.Stem(in.Name) }

// Ext returns the lower-cased extension.
func (in Input) Ext() string { return mediatypes.Ext(in.Name) }

// Strategy is one tier of date inference.
type Strategy interface {
	Source() Source
	Infer(ctx context.Context, in Input) (time.Time, bool)
}

// StatFunc returns the timestamps of the file at path.
type StatFunc func(ctx context.Context, path string) (filesystem.FileTimes, error)

// OpenFunc opens the file at path for metadata decoding.
type OpenFunc func(ctx context.Context, path string) (io.ReadSeekCloser, error)

// Result is the outcome of Resolve. A zero Time means unknown.
type Result struct {
	Time   time.Time
	Source Source
}

// Found reports whether a strategy produced a date.
func (r Result) Found() bool { return !r.Time.IsZero() }

// Millis returns the epoch milliseconds of the result, or 0 when unknown.
func (r Result) Millis() int64 {
	if !r.Found() {
		return 0
	}
	return r.Time.UnixMilli()
}

// Options configures New.
type Options struct {
	// Location is used for calendar dates and display formatting.
	// Defaults to time.Local.
	Location *time.Location
	// Clock supplies "now" for the Unix-timestamp window. Defaults to RealClock.
	Clock Clock
	// FutureSkew is the allowance past now for Unix timestamps.
	// Defaults to DefaultFutureSkew.
	FutureSkew time.Duration
	// Stat enables the filesystem strategy.
	Stat StatFunc
	// Open enables the embedded metadata strategy.
	Open OpenFunc
}

// Engine resolves dates and titles for media files.
type Engine struct {
	loc        *time.Location
	strategies []Strategy
}

// New builds an Engine with the standard strategy order.
func New(opts Options) *Engine {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.FutureSkew <= 0 {
		opts.FutureSkew = DefaultFutureSkew
	}

	window := Window{Clock: opts.Clock, FutureSkew: opts.FutureSkew}
	strategies := []Strategy{
		CalendarStrategy{Location: opts.Location},
		UnixStrategy{Window: window},
	}
	if opts.Open != nil {
		strategies = append(strategies, EmbeddedStrategy{Open: opts.Open, Location: opts.Location, Window: window})
	}
	if opts.Stat != nil {
		strategies = append(strategies, FilesystemStrategy{Stat: opts.Stat})
	}

	return NewWithStrategies(opts.Location, strategies...)
}

// NewWithStrategies builds an Engine from an explicit strategy list.
func NewWithStrategies(loc *time.Location, strategies ...Strategy) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{loc: loc, strategies: strategies}
}

// Location returns the zone used for calendar dates and formatting.
func (e *Engine) Location() *time.Location { return e.loc }

// Resolve runs the strategies in order and returns the first date found.
func (e *Engine) Resolve(ctx context.Context, name, path string) Result {
	in := Input{Name: name, Path: path}
	for _, s := range e.strategies {
		if t, ok := s.Infer(ctx, in); ok && !t.IsZero() {
			return Result{Time: t, Source: s.Source()}
		}
	}
	return Result{Source: SourceNone}
}

// Timestamp returns the inferred epoch milliseconds, or 0 when unknown.
func (e *Engine) Timestamp(ctx context.Context, name, path string) int64 {
	return e.Resolve(ctx, name, path).Millis()
}

// Title returns the formatted inferred date, or the cleaned filename when no
// date resolves.
func (e *Engine) Title(ctx context.Context, name, path string) string {
	if r := e.Resolve(ctx, name, path); r.Found() {
		return e.FormatDate(r.Time)
	}
	return FallbackTitle(name)
}

// FormatDate renders t as "Jan 5, 2024" in the engine's location.
func (e *Engine) FormatDate(t time.Time) string {
	return FormatDate(t, e.loc)
}

// FormatMillis renders epoch milliseconds like FormatDate.
func (e *Engine) FormatMillis(ms int64) string {
	return FormatDate(time.UnixMilli(ms), e.loc)
}

// ParseDate parses a sidecar date in the engine's location.
func (e *Engine) ParseDate(s string) (time.Time, bool) {
	return ParseDate(s, e.loc)
}
