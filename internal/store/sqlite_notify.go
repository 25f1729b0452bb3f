package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

// DeleteUnsent removes every not-yet-sent scheduled row for the user. Sent
// rows are kept untouched for bookkeeping.
func (r *SQLiteRepo) DeleteUnsent(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM scheduled_notifications WHERE user_id = ? AND sent = 0`, userID)
	if err != nil {
		return persistErr("delete unsent", err)
	}
	return nil
}

// InsertScheduled inserts a fresh batch of concrete occurrences.
func (r *SQLiteRepo) InsertScheduled(ctx context.Context, batch []domain.ScheduledNotification) error {
	if len(batch) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("insert scheduled", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scheduled_notifications
			(id, user_id, title, body, fire_at, pattern, sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return persistErr("insert scheduled", err)
	}
	defer stmt.Close()

	for _, n := range batch {
		created := n.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			n.ID, n.UserID, n.Title, n.Body,
			n.FireAt.UTC().Unix(), n.Pattern, boolToInt(n.Sent), created.Unix(),
		); err != nil {
			_ = tx.Rollback()
			return persistErr("insert scheduled", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return persistErr("insert scheduled", err)
	}
	return nil
}

const scheduledColumns = `id, user_id, title, body, fire_at, pattern, sent, created_at`

func scanScheduled(rows *sql.Rows) (domain.ScheduledNotification, error) {
	var (
		n         domain.ScheduledNotification
		fireAt    int64
		sent      int
		createdAt int64
	)
	err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &fireAt, &n.Pattern, &sent, &createdAt)
	if err != nil {
		return n, err
	}
	n.FireAt = time.Unix(fireAt, 0).UTC()
	n.Sent = sent != 0
	n.CreatedAt = time.Unix(createdAt, 0).UTC()
	return n, nil
}

// ListUnsent returns the user's pending occurrences in fire order.
func (r *SQLiteRepo) ListUnsent(ctx context.Context, userID string) ([]domain.ScheduledNotification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduledColumns+`
		FROM scheduled_notifications
		WHERE user_id = ? AND sent = 0
		ORDER BY fire_at ASC`, userID)
	if err != nil {
		return nil, persistErr("list unsent", err)
	}
	defer rows.Close()
	return collectScheduled(rows)
}

// ListDue returns up to limit unsent occurrences whose fire time has passed,
// across all users, ordered by fire time.
func (r *SQLiteRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledNotification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduledColumns+`
		FROM scheduled_notifications
		WHERE sent = 0 AND fire_at <= ?
		ORDER BY fire_at ASC
		LIMIT ?`, now.UTC().Unix(), limit)
	if err != nil {
		return nil, persistErr("list due", err)
	}
	defer rows.Close()
	return collectScheduled(rows)
}

func collectScheduled(rows *sql.Rows) ([]domain.ScheduledNotification, error) {
	var res []domain.ScheduledNotification
	for rows.Next() {
		n, err := scanScheduled(rows)
		if err != nil {
			return nil, persistErr("scan scheduled", err)
		}
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate scheduled", err)
	}
	return res, nil
}

// MarkSent flags a single occurrence as delivered.
func (r *SQLiteRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_notifications SET sent = 1 WHERE id = ?`, id)
	if err != nil {
		return persistErr("mark sent", err)
	}
	return nil
}

// InsertHistory records an entry in the in-app notification list.
func (r *SQLiteRepo) InsertHistory(ctx context.Context, rec *domain.NotificationRecord) error {
	if rec == nil {
		return errors.New("nil record")
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_history
			(id, user_id, title, body, type, action_url, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Title, rec.Body, rec.Type, rec.ActionURL,
		boolToInt(rec.IsRead), created.Unix(),
	)
	if err != nil {
		return persistErr("insert history", err)
	}
	return nil
}

// ListHistory returns the user's most recent history rows, newest first.
func (r *SQLiteRepo) ListHistory(ctx context.Context, userID string, limit int) ([]domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, body, type, action_url, is_read, created_at
		FROM notification_history
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, persistErr("list history", err)
	}
	defer rows.Close()

	var res []domain.NotificationRecord
	for rows.Next() {
		var (
			rec       domain.NotificationRecord
			isRead    int
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Body,
			&rec.Type, &rec.ActionURL, &isRead, &createdAt); err != nil {
			return nil, persistErr("scan history", err)
		}
		rec.IsRead = isRead != 0
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate history", err)
	}
	return res, nil
}

// MarkHistoryRead flags one of the user's history rows as read.
func (r *SQLiteRepo) MarkHistoryRead(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_history SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return persistErr("mark history read", err)
	}
	return nil
}
