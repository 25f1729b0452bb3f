package store

import (
	"context"
	"time"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

// Repo defines storage operations for accounts, notification scheduling,
// billing state and the community feed. Every query and mutation is scoped
// by the owning user where applicable.
type Repo interface {
	// Accounts.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SetPermissionState(ctx context.Context, userID string, s domain.PermissionState) error
	SetTelegramChat(ctx context.Context, userID string, chatID int64) error

	// Notification preferences (wholesale upsert on save).
	UpsertPreference(ctx context.Context, p *domain.NotificationPreference) error
	GetPreference(ctx context.Context, userID string) (*domain.NotificationPreference, error)

	// Scheduled notifications.
	DeleteUnsent(ctx context.Context, userID string) error
	InsertScheduled(ctx context.Context, batch []domain.ScheduledNotification) error
	ListUnsent(ctx context.Context, userID string) ([]domain.ScheduledNotification, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledNotification, error)
	MarkSent(ctx context.Context, id string) error

	// Notification history.
	InsertHistory(ctx context.Context, rec *domain.NotificationRecord) error
	ListHistory(ctx context.Context, userID string, limit int) ([]domain.NotificationRecord, error)
	MarkHistoryRead(ctx context.Context, userID, id string) error

	// Billing state, updated by the provider webhook.
	UpsertSubscription(ctx context.Context, s *domain.Subscription) error
	GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error)

	// Free-access grants (beta testers and the seeded lifetime grant).
	HasAccessGrant(ctx context.Context, email string) (bool, error)

	// Community feed.
	InsertPost(ctx context.Context, p *domain.Post) error
	ListPosts(ctx context.Context, limit int) ([]domain.Post, error)
	LikePost(ctx context.Context, postID, userID string) (int, error)
	UnlikePost(ctx context.Context, postID, userID string) (int, error)

	Close() error
}
