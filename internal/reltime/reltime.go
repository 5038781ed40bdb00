// Package reltime renders and re-parses the human-relative timestamps the
// idea board displays ("Just now", "2 hr ago", "3 weeks ago"). The display
// string is derived output; callers keep the real instant alongside it and
// only fall back to string parsing for legacy records without one.
package reltime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const JustNow = "Just now"

// agoPattern matches the "N unit(s) ago" family produced by Format and by
// the original fixtures ("2 hr ago", "1 month ago").
var agoPattern = regexp.MustCompile(`(?i)(\d+)\s+(second|minute|min|hr|hour|day|week|month)s?\s+ago`)

// windowPattern is the narrower set the feed's recency filter recognizes;
// months are deliberately absent, so "2 months ago" falls through to the
// include-by-default branch. The monthly metric uses the wider agoPattern
// and excludes on failure instead. The asymmetry is inherited behavior.
var windowPattern = regexp.MustCompile(`(?i)(\d+)\s+(second|minute|hour|hr|day|week)s?\s+ago`)

// Format renders t relative to now.
func Format(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return JustNow
	case d < time.Hour:
		return plural(int(d.Minutes()), "min")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hr")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/(24*7)), "week")
	default:
		return plural(int(d.Hours()/(24*30)), "month")
	}
}

func plural(n int, unit string) string {
	if n > 1 && (unit == "day" || unit == "week" || unit == "month") {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// InCurrentMonth reports whether a record belongs to the calendar month of
// now. A set sortDate wins; "Just now" always counts; otherwise the display
// string is parsed and an unrecognized string is EXCLUDED.
func InCurrentMonth(display string, sortDate, now time.Time) bool {
	if strings.EqualFold(strings.TrimSpace(display), JustNow) {
		return true
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if !sortDate.IsZero() {
		return !sortDate.Before(first)
	}
	if m := agoPattern.FindStringSubmatch(display); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch strings.ToLower(m[2]) {
		case "second", "minute", "min", "hr", "hour":
			return true
		case "day":
			return !now.AddDate(0, 0, -amount).Before(first)
		case "week":
			return !now.AddDate(0, 0, -amount*7).Before(first)
		case "month":
			return !now.AddDate(0, -amount, 0).Before(first)
		}
	}
	if t, ok := parseAbsolute(display); ok {
		return !t.Before(first)
	}
	return false
}

// WithinDays reports whether a record is at most maxDays old, the feed's
// recency window. A set sortDate wins; otherwise the display string is
// parsed and an unrecognized string is INCLUDED.
func WithinDays(display string, sortDate, now time.Time, maxDays int) bool {
	if !sortDate.IsZero() {
		return sortDate.After(now.AddDate(0, 0, -maxDays))
	}
	if m := windowPattern.FindStringSubmatch(display); m != nil {
		amount, _ := strconv.Atoi(m[1])
		var days float64
		switch strings.ToLower(m[2]) {
		case "second":
			days = float64(amount) / 86400
		case "minute":
			days = float64(amount) / 1440
		case "hour", "hr":
			days = float64(amount) / 24
		case "day":
			days = float64(amount)
		case "week":
			days = float64(amount) * 7
		}
		return days <= float64(maxDays)
	}
	return true
}

var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
}

func parseAbsolute(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
