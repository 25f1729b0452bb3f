package store

import (
	"context"
	"errors"
	"time"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

// InsertPost persists an already-moderated, already-rendered feed entry.
func (r *SQLiteRepo) InsertPost(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return errors.New("nil post")
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, user_id, content, html, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Content, p.HTML, created.Unix(),
	)
	if err != nil {
		return persistErr("insert post", err)
	}
	return nil
}

// ListPosts returns the newest posts with author email and stored like count.
func (r *SQLiteRepo) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, u.email, p.content, p.html, p.created_at,
		       (SELECT COUNT(1) FROM post_likes l WHERE l.post_id = p.id) AS likes
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, persistErr("list posts", err)
	}
	defer rows.Close()

	var res []domain.Post
	for rows.Next() {
		var (
			p         domain.Post
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Author, &p.Content, &p.HTML, &createdAt, &p.Likes); err != nil {
			return nil, persistErr("scan post", err)
		}
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate posts", err)
	}
	return res, nil
}

// LikePost records the like (idempotent) and returns the authoritative count
// read back from storage, never a locally incremented value.
func (r *SQLiteRepo) LikePost(ctx context.Context, postID, userID string) (int, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO post_likes (post_id, user_id, created_at)
		VALUES (?, ?, ?)`, postID, userID, time.Now().UTC().Unix())
	if err != nil {
		return 0, persistErr("like post", err)
	}
	return r.likeCount(ctx, postID)
}

// UnlikePost removes the like (idempotent) and returns the authoritative count.
func (r *SQLiteRepo) UnlikePost(ctx context.Context, postID, userID string) (int, error) {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return 0, persistErr("unlike post", err)
	}
	return r.likeCount(ctx, postID)
}

func (r *SQLiteRepo) likeCount(ctx context.Context, postID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM post_likes WHERE post_id = ?`, postID).Scan(&n)
	if err != nil {
		return 0, persistErr("like count", err)
	}
	return n, nil
}
