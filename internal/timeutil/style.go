package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// Style selects how elapsed time is rendered.
type Style string

const (
	// StylePhrase renders "{n} seconds|minutes|hours|days ago".
	StylePhrase Style = "phrase"
	// StyleCompact renders the two largest units, such as "1d1h ago".
	StyleCompact Style = "compact"
	// StyleHumanize renders go-humanize relative times, such as "2 hours ago".
	StyleHumanize Style = "humanize"
)

// Styles lists the supported styles in the order they are documented.
var Styles = []Style{StylePhrase, StyleCompact, StyleHumanize}

// FormatFunc renders the time elapsed from then to now.
type FormatFunc func(now, then time.Time) string

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if string(st) == s {
			return st, nil
		}
	}
	names := make([]string, len(Styles))
	for i, st := range Styles {
		names[i] = string(st)
	}
	return "", fmt.Errorf("unknown style %q (must be one of %s)", s, strings.Join(names, "|"))
}

// Formatter returns the FormatFunc for the given style. Unknown styles fall
// back to StylePhrase.
func Formatter(st Style) FormatFunc {
	switch st {
	case StyleCompact:
		return compact
	case StyleHumanize:
		return humanized
	default:
		return FormatRelativeTime
	}
}

var compactUnits = mustDecodeUnits("yr:yr,wk:wk,d:d,h:h,m:m,s:s,ms:ms,µs:µs")

func mustDecodeUnits(s string) durafmt.Units {
	u, err := durafmt.DefaultUnitsCoder.Decode(s)
	if err != nil {
		panic(fmt.Sprintf("invalid durafmt units %q: %v", s, err))
	}
	return u
}

func compact(now, then time.Time) string {
	since := now.Sub(then)
	if since < 0 {
		return "just now"
	}
	if since < time.Second {
		return "0s ago"
	}
	d := durafmt.Parse(since.Truncate(time.Second))
	return strings.ReplaceAll(d.LimitFirstN(2).Format(compactUnits), " ", "") + " ago"
}

func humanized(now, then time.Time) string {
	return humanize.RelTime(then, now, "ago", "from now")
}
