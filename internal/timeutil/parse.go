package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrInvalidTimestamp is returned when a datetime attribute cannot be parsed.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// dateOnlyLayouts are the ISO 8601 date-only forms. They are read as UTC
// midnight, unlike date-time values without an offset.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseTimestamp parses a datetime attribute value. Date-time values without
// an offset are interpreted in loc (time.Local when nil); ISO date-only values
// are interpreted as UTC midnight. Everything else is handed to dateparse,
// which accepts the usual browser forms ("April 10, 2024 00:35:11",
// "2024/04/10 00:35:11", "Wed Apr 10 2024 00:35:11 GMT+0200", ...).
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	for _, l := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(l, v, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	return t, nil
}
