package filesystem

import "time"

// FileTimes holds the timestamps used for date inference. A zero value means
// the platform or filesystem did not report that time.
type FileTimes struct {
	Birth  time.Time
	Modify time.Time
	Change time.Time
}

// First returns the first non-zero time in birth, modify, change order.
func (ft FileTimes) First() (time.Time, bool) {
	for _, t := range []time.Time{ft.Birth, ft.Modify, ft.Change} {
		if !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}
