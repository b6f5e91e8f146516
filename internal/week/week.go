package week

import (
	"fmt"
	"strings"
	"time"
)

// Convention selects which day a week starts on
type Convention int

const (
	// MondayStart treats Monday 00:00 local time as the start of the week
	MondayStart Convention = iota
	// SundayStart treats Sunday 00:00 local time as the start of the week
	SundayStart
)

func (c Convention) String() string {
	switch c {
	case MondayStart:
		return "monday"
	case SundayStart:
		return "sunday"
	default:
		return "unknown"
	}
}

// ParseConvention parses a week-start convention from a config value
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "":
		return MondayStart, nil
	case "sunday":
		return SundayStart, nil
	default:
		return MondayStart, fmt.Errorf("unsupported week start: %s", s)
	}
}

// Start returns midnight (local time, in now's location) of the first day of
// the week containing now, per the given convention.
func Start(now time.Time, c Convention) time.Time {
	var back int
	switch c {
	case SundayStart:
		// time.Weekday already has Sunday = 0
		back = int(now.Weekday())
	default:
		// Monday = 0, ..., Sunday = 6
		back = (int(now.Weekday()) + 6) % 7
	}

	day := now.AddDate(0, 0, -back)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}
