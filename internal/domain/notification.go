package domain

import "time"

// ScheduledNotification is a single concrete future occurrence. The
// recurrence pattern tag is bookkeeping only; the row itself never repeats.
type ScheduledNotification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	FireAt    time.Time // UTC
	Pattern   string    // recurrence tag of the batch that produced it
	Sent      bool
	CreatedAt time.Time
}

// NotificationRecord is a history row shown in the in-app notification list.
type NotificationRecord struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Type      string // "immediate" or "scheduled"
	ActionURL string
	IsRead    bool
	CreatedAt time.Time
}
