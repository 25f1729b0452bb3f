package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("notification permission denied")
	ErrPersistence      = errors.New("persistence failure")
	ErrNotFound         = errors.New("not found")
)

// ModerationError carries the full flag list so callers can show every
// reason at once instead of the first one hit.
type ModerationError struct {
	Flags []string
}

func (e *ModerationError) Error() string {
	return "moderation rejected: " + strings.Join(e.Flags, "; ")
}
