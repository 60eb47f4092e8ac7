package timeutil

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// ElapsedSeconds returns the number of whole seconds between then and now,
// rounded toward negative infinity. A timestamp half a second in the future
// yields -1, not 0.
func ElapsedSeconds(now, then time.Time) int64 {
	return floorDiv(now.Sub(then).Milliseconds(), 1000)
}

// Phrase renders an elapsed-seconds value as a coarse relative time phrase.
// The first matching bracket wins:
//
//	s < 60     -> "{s} seconds ago"
//	s < 3600   -> "{s/60} minutes ago"
//	s < 86400  -> "{s/3600} hours ago"
//	otherwise  -> "{s/86400} days ago"
//
// Units are always plural ("1 minutes ago"). Negative values are not clamped
// and land in the seconds bracket.
func Phrase(s int64) string {
	switch {
	case s < secondsPerMinute:
		return fmt.Sprintf("%d seconds ago", s)
	case s < secondsPerHour:
		return fmt.Sprintf("%d minutes ago", floorDiv(s, secondsPerMinute))
	case s < secondsPerDay:
		return fmt.Sprintf("%d hours ago", floorDiv(s, secondsPerHour))
	default:
		return fmt.Sprintf("%d days ago", floorDiv(s, secondsPerDay))
	}
}

// FormatRelativeTime returns the phrase for the time elapsed from then to now,
// such as "59 seconds ago" or "2 days ago".
func FormatRelativeTime(now, then time.Time) string {
	return Phrase(ElapsedSeconds(now, then))
}

// floorDiv divides a by b (b > 0) rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
