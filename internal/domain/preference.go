package domain

import (
	"fmt"
	"time"
)

// NotificationPreference is the per-user settings record, overwritten
// wholesale on every save.
type NotificationPreference struct {
	UserID          string
	Enabled         bool
	MorningTime     string // "HH:MM"
	EveningReminder bool
	EveningTime     string // "HH:MM"
	Frequency       RecurrenceMode
	CustomDays      []int // 0=Sunday..6=Saturday, used when Frequency is RecurCustom
	UpdatedAt       time.Time
}

// Validate rejects malformed times and an empty custom day set before any
// storage access is attempted.
func (p *NotificationPreference) Validate() error {
	if _, _, err := ParseClock(p.MorningTime); err != nil {
		return fmt.Errorf("morning time: %w", err)
	}
	if p.EveningReminder {
		if _, _, err := ParseClock(p.EveningTime); err != nil {
			return fmt.Errorf("evening time: %w", err)
		}
	}
	switch p.Frequency {
	case RecurDaily, RecurWeekdays:
	case RecurCustom:
		if p.Enabled && len(p.CustomDays) == 0 {
			return fmt.Errorf("%w: custom recurrence with empty day set", ErrInvalidArgument)
		}
		for _, d := range p.CustomDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: weekday %d out of range", ErrInvalidArgument, d)
			}
		}
	default:
		return fmt.Errorf("%w: unknown recurrence mode %q", ErrInvalidArgument, p.Frequency)
	}
	return nil
}
