package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
	"github.com/ChristelOko/BarometreHED-sub002/internal/notify"
	"github.com/ChristelOko/BarometreHED-sub002/internal/store"
)

// Scheduler periodically polls the scheduled_notifications table and delivers
// due rows through the display surface. Each row is a single concrete
// occurrence; delivery marks it sent and mirrors it into the history list.
type Scheduler struct {
	repo     store.Repo
	surface  notify.Surface
	log      *zap.Logger
	interval time.Duration
}

// New creates a Scheduler. Poll interval is fixed (30s).
func New(repo store.Repo, surface notify.Surface, log *zap.Logger) *Scheduler {
	return &Scheduler{
		repo:     repo,
		surface:  surface,
		log:      log,
		interval: 30 * time.Second,
	}
}

// Run starts the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("delivery scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one delivery cycle: find due rows, display, mark sent.
func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().UTC()

	due, err := s.repo.ListDue(ctx, now, 100)
	if err != nil {
		s.log.Error("ListDue failed", zap.Error(err))
		return
	}
	for _, n := range due {
		u, err := s.repo.GetUser(ctx, n.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Owner gone; drop the row so it stops coming back.
				_ = s.repo.MarkSent(ctx, n.ID)
				continue
			}
			s.log.Error("user lookup failed", zap.Error(err), zap.String("user", n.UserID))
			continue
		}
		if u.Permission != domain.PermissionGranted {
			// No display channel; the row is consumed silently.
			if err := s.repo.MarkSent(ctx, n.ID); err != nil {
				s.log.Error("MarkSent failed", zap.Error(err), zap.String("id", n.ID))
			}
			continue
		}

		if err := s.surface.Display(ctx, u, n.Title, n.Body, ""); err != nil {
			s.log.Error("display failed", zap.Error(err), zap.String("user", n.UserID))
			continue
		}
		if err := s.repo.MarkSent(ctx, n.ID); err != nil {
			s.log.Error("MarkSent failed", zap.Error(err), zap.String("id", n.ID))
			continue
		}
		if err := s.repo.InsertHistory(ctx, &domain.NotificationRecord{
			ID:        uuid.NewString(),
			UserID:    n.UserID,
			Title:     n.Title,
			Body:      n.Body,
			Type:      "scheduled",
			CreatedAt: now,
		}); err != nil {
			s.log.Error("history write failed", zap.Error(err), zap.String("user", n.UserID))
		}
	}
}
