package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the database at the given path, applies
// recommended PRAGMAs, runs the embedded migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single-writer engine; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// CreateUser inserts a new account row.
func (r *SQLiteRepo) CreateUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	perm := u.Permission
	if perm == "" {
		perm = domain.PermissionUndetermined
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, profile_type, free_access,
			telegram_chat_id, permission_state, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.ProfileType, boolToInt(u.FreeAccess),
		toNullInt64(u.TelegramChatID), string(perm), created.Unix(),
	)
	if err != nil {
		return persistErr("create user", err)
	}
	return nil
}

const userColumns = `id, email, password_hash, profile_type, free_access,
	telegram_chat_id, permission_state, created_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u          domain.User
		freeAccess int
		chatNS     sql.NullInt64
		perm       string
		createdAt  int64
	)
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.ProfileType, &freeAccess,
		&chatNS, &perm, &createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistErr("scan user", err)
	}
	u.FreeAccess = freeAccess != 0
	u.TelegramChatID = fromNullInt64(chatNS)
	u.Permission = domain.PermissionState(perm)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

// GetUser returns an account by id, or domain.ErrNotFound.
func (r *SQLiteRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByEmail returns an account by email, or domain.ErrNotFound.
func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// SetPermissionState persists the platform notification permission.
func (r *SQLiteRepo) SetPermissionState(ctx context.Context, userID string, s domain.PermissionState) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET permission_state = ? WHERE id = ?`, string(s), userID)
	if err != nil {
		return persistErr("set permission state", err)
	}
	return nil
}

// SetTelegramChat links a Telegram chat to the account.
func (r *SQLiteRepo) SetTelegramChat(ctx context.Context, userID string, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET telegram_chat_id = ? WHERE id = ?`, chatID, userID)
	if err != nil {
		return persistErr("set telegram chat", err)
	}
	return nil
}

// UpsertPreference overwrites the user's settings record wholesale.
func (r *SQLiteRepo) UpsertPreference(ctx context.Context, p *domain.NotificationPreference) error {
	if p == nil {
		return errors.New("nil preference")
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_preferences (
			user_id, enabled, morning_time, evening_reminder,
			evening_time, frequency, custom_days, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			enabled          = excluded.enabled,
			morning_time     = excluded.morning_time,
			evening_reminder = excluded.evening_reminder,
			evening_time     = excluded.evening_time,
			frequency        = excluded.frequency,
			custom_days      = excluded.custom_days,
			updated_at       = excluded.updated_at`,
		p.UserID, boolToInt(p.Enabled), p.MorningTime, boolToInt(p.EveningReminder),
		p.EveningTime, string(p.Frequency), joinDays(p.CustomDays), updated.Unix(),
	)
	if err != nil {
		return persistErr("upsert preference", err)
	}
	return nil
}

// GetPreference returns the settings record, or domain.ErrNotFound.
func (r *SQLiteRepo) GetPreference(ctx context.Context, userID string) (*domain.NotificationPreference, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, enabled, morning_time, evening_reminder,
		       evening_time, frequency, custom_days, updated_at
		FROM notification_preferences
		WHERE user_id = ?`, userID)

	var (
		p          domain.NotificationPreference
		enabled    int
		evening    int
		frequency  string
		customDays string
		updatedAt  int64
	)
	if err := row.Scan(
		&p.UserID, &enabled, &p.MorningTime, &evening,
		&p.EveningTime, &frequency, &customDays, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistErr("get preference", err)
	}
	p.Enabled = enabled != 0
	p.EveningReminder = evening != 0
	p.Frequency = domain.RecurrenceMode(frequency)
	p.CustomDays = splitDays(customDays)
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &p, nil
}

// UpsertSubscription overwrites the billing state reported by the provider.
func (r *SQLiteRepo) UpsertSubscription(ctx context.Context, s *domain.Subscription) error {
	if s == nil {
		return errors.New("nil subscription")
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, status, plan_id, features, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			status     = excluded.status,
			plan_id    = excluded.plan_id,
			features   = excluded.features,
			updated_at = excluded.updated_at`,
		s.UserID, string(s.Status), s.PlanID, joinFeatures(s.Features), updated.Unix(),
	)
	if err != nil {
		return persistErr("upsert subscription", err)
	}
	return nil
}

// GetSubscription returns the billing state, or domain.ErrNotFound when the
// user has never had one.
func (r *SQLiteRepo) GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, status, plan_id, features, updated_at
		FROM subscriptions WHERE user_id = ?`, userID)

	var (
		s         domain.Subscription
		status    string
		features  string
		updatedAt int64
	)
	if err := row.Scan(&s.UserID, &status, &s.PlanID, &features, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistErr("get subscription", err)
	}
	s.Status = domain.SubscriptionStatus(status)
	s.Features = splitFeatures(features)
	s.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &s, nil
}

// HasAccessGrant reports whether a free-access grant exists for the email.
func (r *SQLiteRepo) HasAccessGrant(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM access_grants WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, persistErr("access grant lookup", err)
	}
	return n > 0, nil
}
