package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/copewatch/pkg/domain"
)

// PromiseRepository keeps promise records
type PromiseRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPromiseRepository creates a new promise repository
func NewPromiseRepository(db *sqlx.DB) *PromiseRepository {
	return &PromiseRepository{db: db, now: time.Now}
}

// UpsertPromise inserts a promise or updates the one with the same text, returns its id
func (r *PromiseRepository) UpsertPromise(ctx context.Context, p domain.Promise) (int64, error) {
	if strings.TrimSpace(p.Text) == "" {
		return 0, fmt.Errorf("upsert promise: empty text")
	}
	if !p.Status.Valid() {
		return 0, fmt.Errorf("upsert promise: unknown status %q", p.Status)
	}
	if p.PromisedAt != nil {
		t := p.PromisedAt.UTC()
		p.PromisedAt = &t
	}
	ts := r.now().UTC()
	p.CreatedAt, p.UpdatedAt = ts, ts

	var id int64
	err := withRetry(ctx, func() error {
		query := `
			INSERT INTO promises (text, status, date_promised, source_url, comment, created_at, updated_at)
			VALUES (:text, :status, :date_promised, :source_url, :comment, :created_at, :updated_at)
			ON CONFLICT(text) DO UPDATE SET
				status = excluded.status,
				date_promised = excluded.date_promised,
				source_url = excluded.source_url,
				comment = excluded.comment,
				updated_at = excluded.updated_at
		`
		if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
			return fmt.Errorf("upsert promise: %w", err)
		}
		if err := r.db.GetContext(ctx, &id, "SELECT id FROM promises WHERE text = ?", p.Text); err != nil {
			return fmt.Errorf("get promise id: %w", err)
		}
		return nil
	})
	return id, err
}

// ListPromises returns promises with the given status, all if status is empty.
// Newest promises go first, undated ones last.
func (r *PromiseRepository) ListPromises(ctx context.Context, status domain.PromiseStatus) ([]domain.Promise, error) {
	query := "SELECT * FROM promises"
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY date_promised IS NULL, date_promised DESC, id"

	promises := []domain.Promise{}
	if err := r.db.SelectContext(ctx, &promises, query, args...); err != nil {
		return nil, fmt.Errorf("list promises: %w", err)
	}
	return promises, nil
}

// Stats returns promise counts per status
func (r *PromiseRepository) Stats(ctx context.Context) (domain.PromiseStats, error) {
	var rows []struct {
		Status domain.PromiseStatus `db:"status"`
		Count  int                  `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT status, COUNT(*) AS cnt FROM promises GROUP BY status"); err != nil {
		return domain.PromiseStats{}, fmt.Errorf("promise stats: %w", err)
	}

	var res domain.PromiseStats
	for _, row := range rows {
		res.Total += row.Count
		switch row.Status {
		case domain.PromiseBroken:
			res.Broken = row.Count
		case domain.PromiseUTurn:
			res.UTurn = row.Count
		case domain.PromisePending:
			res.Pending = row.Count
		case domain.PromiseKept:
			res.Kept = row.Count
		}
	}
	return res, nil
}

// PromiseTexts returns texts of promises in any of the statuses, all if none given
func (r *PromiseRepository) PromiseTexts(ctx context.Context, statuses ...domain.PromiseStatus) ([]string, error) {
	query := "SELECT text FROM promises"
	var args []any
	if len(statuses) > 0 {
		var err error
		query, args, err = sqlx.In("SELECT text FROM promises WHERE status IN (?)", statuses)
		if err != nil {
			return nil, fmt.Errorf("build query: %w", err)
		}
	}
	query += " ORDER BY id"

	texts := []string{}
	if err := r.db.SelectContext(ctx, &texts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("promise texts: %w", err)
	}
	return texts, nil
}
