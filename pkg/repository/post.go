package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/copewatch/pkg/domain"
)

// PostRepository keeps the post log
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// SavePost inserts a post attempt, an existing id is replaced
func (r *PostRepository) SavePost(ctx context.Context, p domain.Post) error {
	p.CreatedAt = p.CreatedAt.UTC()
	return withRetry(ctx, func() error {
		query := `
			INSERT OR REPLACE INTO posts (id, text, status, tweet_id, error, triggered_by, created_at)
			VALUES (:id, :text, :status, :tweet_id, :error, :triggered_by, :created_at)
		`
		if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
			return fmt.Errorf("save post: %w", err)
		}
		return nil
	})
}

// CountPostsSince counts successful posts created at or after since
func (r *PostRepository) CountPostsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM posts WHERE status = ? AND created_at >= ?", domain.PostPosted, since.UTC())
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// LastPostedAt returns the time of the latest successful post, zero time if none
func (r *PostRepository) LastPostedAt(ctx context.Context) (time.Time, error) {
	var p domain.Post
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM posts WHERE status = ? ORDER BY created_at DESC LIMIT 1", domain.PostPosted)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("last post: %w", err)
	}
	return p.CreatedAt, nil
}

// ListPosts returns recent attempts, newest first
func (r *PostRepository) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	posts := []domain.Post{}
	err := r.db.SelectContext(ctx, &posts,
		"SELECT * FROM posts ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
