package utils

import (
	"fmt"
	"time"
)

// Constants
const (
	DATE_LAYOUT  = "Mon, 02 Jan 15:04"
	CLOCK_LAYOUT = "15:04"
)

// FormatLocal renders a timestamp in the given IANA timezone, falling back
// to UTC when the zone is unknown. Returns an empty string for nil times.
func FormatLocal(t *time.Time, tz string) string {
	if t == nil {
		return ""
	}
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	return t.In(loc).Format(DATE_LAYOUT)
}

// FormatClock renders just the wall-clock portion of a timestamp in the
// given timezone.
func FormatClock(t *time.Time, tz string) string {
	if t == nil {
		return ""
	}
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	return t.In(loc).Format(CLOCK_LAYOUT)
}

// FormatMinutes renders a minute count as "45m" or, above an hour, "1h 5m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = -minutes
	}
	if minutes <= 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatShift renders a signed minute delta as "+45m" or "-30m".
func FormatShift(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
	}
	return sign + FormatMinutes(minutes)
}

// FormatHours renders fractional hours as a rough human duration, e.g.
// 11.7 -> "12 hours", 0.5 -> "30 minutes".
func FormatHours(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%d minutes", int(hours*60+0.5))
	}
	h := int(hours + 0.5)
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", h)
}
