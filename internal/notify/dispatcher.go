package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
	"github.com/ChristelOko/BarometreHED-sub002/internal/store"
)

// Dispatcher turns saved preferences into concrete scheduled rows and
// provides the immediate-send path.
type Dispatcher struct {
	repo        store.Repo
	surface     Surface
	log         *zap.Logger
	horizonDays int
	now         func() time.Time
}

// NewDispatcher builds a dispatcher with the given scheduling horizon.
func NewDispatcher(repo store.Repo, surface Surface, log *zap.Logger, horizonDays int) *Dispatcher {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	return &Dispatcher{
		repo:        repo,
		surface:     surface,
		log:         log,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// Reschedule replaces the user's pending occurrences with a fresh batch
// computed from prefs. All unsent rows are deleted first; when prefs are
// disabled nothing is re-inserted. The delete and the insert are two storage
// calls, not one transaction: a failure between them leaves the user with an
// empty schedule until the next successful save (accepted product gap).
func (d *Dispatcher) Reschedule(ctx context.Context, userID string, prefs *domain.NotificationPreference) error {
	if prefs == nil {
		return fmt.Errorf("%w: nil preferences", domain.ErrInvalidArgument)
	}
	if err := prefs.Validate(); err != nil {
		return err
	}

	if err := d.repo.DeleteUnsent(ctx, userID); err != nil {
		return err
	}
	if !prefs.Enabled {
		d.log.Info("notifications disabled, schedule cleared", zap.String("user", userID))
		return nil
	}

	profile := ""
	if u, err := d.repo.GetUser(ctx, userID); err == nil {
		profile = u.ProfileType
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	set := messagesFor(profile)
	now := d.now()

	batch, err := d.expandBatch(now, userID, prefs, prefs.MorningTime, set.Morning)
	if err != nil {
		return err
	}
	if prefs.EveningReminder {
		evening, err := d.expandBatch(now, userID, prefs, prefs.EveningTime, set.Evening)
		if err != nil {
			return err
		}
		batch = append(batch, evening...)
	}

	if err := d.repo.InsertScheduled(ctx, batch); err != nil {
		return err
	}
	d.log.Info("schedule replaced",
		zap.String("user", userID),
		zap.Int("occurrences", len(batch)),
		zap.String("frequency", string(prefs.Frequency)),
	)
	return nil
}

func (d *Dispatcher) expandBatch(now time.Time, userID string, prefs *domain.NotificationPreference, clock string, msg message) ([]domain.ScheduledNotification, error) {
	hour, minute, err := domain.ParseClock(clock)
	if err != nil {
		return nil, err
	}
	times, err := domain.ExpandOccurrences(now, hour, minute, prefs.Frequency, prefs.CustomDays, d.horizonDays)
	if err != nil {
		return nil, err
	}
	batch := make([]domain.ScheduledNotification, 0, len(times))
	for _, at := range times {
		batch = append(batch, domain.ScheduledNotification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     msg.Title,
			Body:      msg.Body,
			FireAt:    at.UTC(),
			Pattern:   string(prefs.Frequency),
			CreatedAt: now.UTC(),
		})
	}
	return batch, nil
}

// SendImmediate attempts a display through the surface and records a history
// row regardless of the display outcome. Display failures are logged and
// swallowed; only the history write can fail the call.
func (d *Dispatcher) SendImmediate(ctx context.Context, userID, title, body, actionURL string) error {
	u, err := d.repo.GetUser(ctx, userID)
	if err == nil && u.Permission == domain.PermissionGranted {
		if derr := d.surface.Display(ctx, u, title, body, actionURL); derr != nil {
			d.log.Warn("immediate display failed", zap.Error(derr), zap.String("user", userID))
		}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		d.log.Warn("user lookup failed before display", zap.Error(err), zap.String("user", userID))
	}

	return d.repo.InsertHistory(ctx, &domain.NotificationRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Type:      "immediate",
		ActionURL: actionURL,
		IsRead:    false,
		CreatedAt: d.now().UTC(),
	})
}

// RequestPermission resolves the notification permission for the user,
// prompting through the surface only while the state is still undetermined.
// Denied is sticky: it is never re-prompted from application code.
func (d *Dispatcher) RequestPermission(ctx context.Context, userID string) (bool, error) {
	u, err := d.repo.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	switch u.Permission {
	case domain.PermissionGranted:
		return true, nil
	case domain.PermissionDenied:
		return false, nil
	}

	state, err := d.surface.RequestPermission(ctx, u)
	if err != nil {
		return false, err
	}
	if err := d.repo.SetPermissionState(ctx, userID, state); err != nil {
		return false, err
	}
	return state == domain.PermissionGranted, nil
}
