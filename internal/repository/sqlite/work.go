package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/codec"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/repository"
)

// compile-time check that *DB implements repository.WorkRepository
var _ repository.WorkRepository = (*DB)(nil)

const workColumns = `id, title, category, category_name, thumbnail, image, description, background, links, created_at, updated_at`

// CreateWork inserts a new work and fills in the generated ID and timestamps.
func (db *DB) CreateWork(ctx context.Context, work *model.Work) error {
	links, err := codec.EncodeLinks(work.Links)
	if err != nil {
		return err
	}

	now := time.Now()
	work.CreatedAt = now
	work.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO works (title, category, category_name, thumbnail, image, description, background, links, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		work.Title,
		work.Category,
		work.CategoryName,
		work.Thumbnail,
		work.Image,
		work.Description,
		work.Background,
		links,
		work.CreatedAt,
		work.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating work: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new work id: %w", err)
	}
	work.ID = id

	if work.Links == nil {
		work.Links = []model.WorkLink{}
	}
	return nil
}

// GetWorkByID retrieves a single work.
func (db *DB) GetWorkByID(ctx context.Context, id int64) (*model.Work, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+workColumns+` FROM works WHERE id = ?`, id)

	work, err := db.scanWork(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("work", id)
		}
		return nil, fmt.Errorf("sqlite: getting work %d: %w", id, err)
	}
	return work, nil
}

// ListWorks returns works newest-created first, optionally filtered by
// category. An empty category means no filter.
func (db *DB) ListWorks(ctx context.Context, filter repository.WorkFilter) ([]model.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing works: %w", err)
	}
	defer rows.Close()

	works := []model.Work{}
	for rows.Next() {
		work, err := db.scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning work row: %w", err)
		}
		works = append(works, *work)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating works: %w", err)
	}
	return works, nil
}

// UpdateWork overwrites every mutable field and refreshes updated_at.
func (db *DB) UpdateWork(ctx context.Context, work *model.Work) error {
	links, err := codec.EncodeLinks(work.Links)
	if err != nil {
		return err
	}

	work.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE works
		 SET title = ?, category = ?, category_name = ?, thumbnail = ?, image = ?, description = ?, background = ?, links = ?, updated_at = ?
		 WHERE id = ?`,
		work.Title,
		work.Category,
		work.CategoryName,
		work.Thumbnail,
		work.Image,
		work.Description,
		work.Background,
		links,
		work.UpdatedAt,
		work.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating work %d: %w", work.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("work", work.ID)
	}
	return nil
}

// DeleteWork removes a work by id.
func (db *DB) DeleteWork(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting work %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("work", id)
	}
	return nil
}

// scanWork reads one work row. A malformed links blob is logged and
// degraded to an empty list so a single bad row never fails a listing.
func (db *DB) scanWork(row rowScanner) (*model.Work, error) {
	var w model.Work
	var links string
	err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Category,
		&w.CategoryName,
		&w.Thumbnail,
		&w.Image,
		&w.Description,
		&w.Background,
		&links,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Links, err = codec.DecodeLinks(links)
	if err != nil {
		db.logger.Warn("malformed links column, returning empty list",
			slog.Int64("work_id", w.ID),
			slog.String("error", err.Error()),
		)
		w.Links = []model.WorkLink{}
	}
	return &w, nil
}
