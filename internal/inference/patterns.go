package inference

import (
	"context"
	"regexp"
	"strconv"
	"time"
)

const (
	minYear = 2008
	maxYear = 2100
)

// earliestUnix is the lower bound for name-derived and embedded instants.
var earliestUnix = time.Date(minYear, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	ymdPattern  = regexp.MustCompile(`^(\d{4})[-_.]?(\d{2})[-_.]?(\d{2})`)
	dmyPattern  = regexp.MustCompile(`^(\d{2})[-_.]?(\d{2})[-_.]?(\d{4})`)
	unixPattern = regexp.MustCompile(`^\d{10}`)
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// boundedMatches returns the submatches of an anchored pattern at every
// position of s where the match is neither preceded nor followed by a digit.
func boundedMatches(re *regexp.Regexp, s string) [][]string {
	var out [][]string
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) || (i > 0 && isDigit(s[i-1])) {
			continue
		}
		m := re.FindStringSubmatch(s[i:])
		if m == nil {
			continue
		}
		if end := i + len(m[0]); end < len(s) && isDigit(s[end]) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// calendarDate returns local midnight for y-m-d when it is a real date with
// y in [2008, 2100].
func calendarDate(y, m, d string, loc *time.Location) (time.Time, bool) {
	year, err1 := strconv.Atoi(y)
	month, err2 := strconv.Atoi(m)
	day, err3 := strconv.Atoi(d)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// CalendarStrategy finds yyyy-mm-dd, then dd-mm-yyyy, in the filename stem.
// Separators between the parts may be "-", "_", "." or absent.
type CalendarStrategy struct {
	Location *time.Location
}

// Source implements Strategy.
func (CalendarStrategy) Source() Source { return SourceCalendar }

// Infer implements Strategy.
func (s CalendarStrategy) Infer(_ context.Context, in Input) (time.Time, bool) {
	return s.FromName(in.Stem())
}

// FromName applies the calendar patterns to a bare name.
func (s CalendarStrategy) FromName(name string) (time.Time, bool) {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	for _, m := range boundedMatches(ymdPattern, name) {
		if t, ok := calendarDate(m[1], m[2], m[3], loc); ok {
			return t, true
		}
	}
	for _, m := range boundedMatches(dmyPattern, name) {
		if t, ok := calendarDate(m[3], m[2], m[1], loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Window bounds plausible capture instants to [2008-01-01, now+FutureSkew].
type Window struct {
	Clock      Clock
	FutureSkew time.Duration
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	clock := w.Clock
	if clock == nil {
		clock = RealClock{}
	}
	upper := clock.Now().Add(w.FutureSkew)
	return !t.Before(earliestUnix) && !t.After(upper)
}

// UnixStrategy reads a run of exactly ten digits as epoch seconds.
type UnixStrategy struct {
	Window Window
}

// Source implements Strategy.
func (UnixStrategy) Source() Source { return SourceUnix }

// Infer implements Strategy.
func (s UnixStrategy) Infer(_ context.Context, in Input) (time.Time, bool) {
	return s.FromName(in.Stem())
}

// FromName applies the Unix pattern to a bare name.
func (s UnixStrategy) FromName(name string) (time.Time, bool) {
	for _, m := range boundedMatches(unixPattern, name) {
		secs, err := strconv.ParseInt(m[0], 10, 64)
		if err != nil {
			continue
		}
		t := time.Unix(secs, 0)
		if s.Window.Contains(t) {
			return t, true
		}
	}
	return time.Time{}, false
}
