package domain

import (
	"fmt"
	"time"
)

// RecurrenceMode governs which calendar days qualify for scheduling.
type RecurrenceMode string

const (
	RecurDaily    RecurrenceMode = "daily"
	RecurWeekdays RecurrenceMode = "weekdays"
	RecurCustom   RecurrenceMode = "custom"
)

// DefaultHorizonDays is the forward window within which concrete
// occurrences are generated.
const DefaultHorizonDays = 30

// ExpandOccurrences turns a clock time plus a recurrence mode into the
// ordered list of concrete future timestamps within the horizon, in the
// location of now. Day offset 0 is "today"; a time already passed today is
// excluded, the expander never back-dates. customDays uses 0=Sunday..6=Saturday
// and is consulted only when mode is RecurCustom.
func ExpandOccurrences(now time.Time, hour, minute int, mode RecurrenceMode, customDays []int, horizonDays int) ([]time.Time, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("%w: hour %d out of range", ErrInvalidArgument, hour)
	}
	if minute < 0 || minute > 59 {
		return nil, fmt.Errorf("%w: minute %d out of range", ErrInvalidArgument, minute)
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	var daySet map[int]bool
	switch mode {
	case RecurDaily, RecurWeekdays:
	case RecurCustom:
		if len(customDays) == 0 {
			return nil, fmt.Errorf("%w: custom recurrence with empty day set", ErrInvalidArgument)
		}
		daySet = make(map[int]bool, len(customDays))
		for _, d := range customDays {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidArgument, d)
			}
			daySet[d] = true
		}
	default:
		return nil, fmt.Errorf("%w: unknown recurrence mode %q", ErrInvalidArgument, mode)
	}

	out := make([]time.Time, 0, horizonDays)
	for offset := 0; offset < horizonDays; offset++ {
		day := now.AddDate(0, 0, offset)
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
		if !at.After(now) {
			continue
		}
		if !dayQualifies(at.Weekday(), mode, daySet) {
			continue
		}
		out = append(out, at)
	}
	return out, nil
}

func dayQualifies(wd time.Weekday, mode RecurrenceMode, daySet map[int]bool) bool {
	switch mode {
	case RecurDaily:
		return true
	case RecurWeekdays:
		return wd != time.Sunday && wd != time.Saturday
	case RecurCustom:
		return daySet[int(wd)]
	}
	return false
}
