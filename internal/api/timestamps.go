package api

import (
	"fmt"
	"time"
)

// Layouts tried, in order, for timestamps without a UTC offset. Wearable APIs
// commonly report intraday data in the wearer's local wall time.
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
}

// ParseTimestamp parses an ISO-8601 timestamp. Values with an offset are
// taken as is; values without one are read as wall time in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
