package calendar

import (
	"fmt"
	"time"
)

// ISODate is the wire format for calendar dates. Dates never carry a time
// component.
const ISODate = "2006-01-02"

// ParseDate parses an ISO date string into a date-only time.Time (midnight
// UTC). Returns ErrInvalidDate for anything else.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// dateOf truncates a wall-clock instant in loc to its calendar date,
// re-anchored at midnight UTC so dates compare with ==, Before and After.
func dateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
