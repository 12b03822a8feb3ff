package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/codec"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/repository"
)

// compile-time check that *DB implements repository.ProjectRepository
var _ repository.ProjectRepository = (*DB)(nil)

const projectColumns = `id, title, description, status, tech, progress, screenshots, demo_link, github_link, created_at, updated_at`

// Create inserts a new project and fills in the generated ID and timestamps.
func (db *DB) Create(ctx context.Context, project *model.Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO projects (title, description, status, tech, progress, screenshots, demo_link, github_link, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.Title,
		project.Description,
		project.Status,
		codec.JoinList(project.Tech),
		project.Progress,
		codec.JoinList(project.Screenshots),
		project.DemoLink,
		project.GithubLink,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new project id: %w", err)
	}
	project.ID = id

	if project.Tech == nil {
		project.Tech = []string{}
	}
	if project.Screenshots == nil {
		project.Screenshots = []string{}
	}
	return nil
}

// GetByID retrieves a single project.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %d: %w", id, err)
	}
	return project, nil
}

// List returns projects newest-created first. Status is matched exactly and
// tech by substring against the stored comma-joined list; both conditions
// are ANDed when present.
func (db *DB) List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var conds []string
	var args []any
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Tech != "" {
		conds = append(conds, "tech LIKE ?")
		args = append(args, "%"+filter.Tech+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}
	return projects, nil
}

// Update overwrites every mutable field and refreshes updated_at.
// created_at and id are immutable.
func (db *DB) Update(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, status = ?, tech = ?, progress = ?, screenshots = ?, demo_link = ?, github_link = ?, updated_at = ?
		 WHERE id = ?`,
		project.Title,
		project.Description,
		project.Status,
		codec.JoinList(project.Tech),
		project.Progress,
		codec.JoinList(project.Screenshots),
		project.DemoLink,
		project.GithubLink,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %d: %w", project.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("project", project.ID)
	}
	return nil
}

// Delete removes a project by id.
func (db *DB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("project", id)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var p model.Project
	var tech, screenshots string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Status,
		&tech,
		&p.Progress,
		&screenshots,
		&p.DemoLink,
		&p.GithubLink,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tech = codec.SplitList(tech)
	p.Screenshots = codec.SplitList(screenshots)
	return &p, nil
}
