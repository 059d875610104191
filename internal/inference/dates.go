package inference

import (
	"strings"
	"time"
)

// Layouts accepted for sidecar dates, tried in order. Zone-less layouts are
// read in the caller's location, so a plain "2024-01-05" is local midnight.
var sidecarLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"20060102",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	DisplayLayout,
	"January 2, 2006",
}

// ParseDate parses a sidecar "date" value. Accepted forms are ISO-8601
// (with or without time and zone), yyyymmdd, dd-mm-yyyy, dd/mm/yyyy,
// yyyy-mm-dd, yyyy/mm/dd and the display form "Jan 5, 2024". Dates that do not
// exist on the calendar, such as 2021-13-40, are rejected.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range sidecarLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
