package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/repository"
)

// compile-time check that *DB implements repository.PostRepository
var _ repository.PostRepository = (*DB)(nil)

// CreatePost inserts a new post with a zero like count.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	post.LikeCount = 0
	post.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, category, content, like_count, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		post.UserID,
		post.Title,
		post.Category,
		post.Content,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new post id: %w", err)
	}
	post.ID = id
	return nil
}

// GetPost retrieves one post joined with its author's username and avatar.
func (db *DB) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(db.conn.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.category, p.content, p.like_count, p.created_at, u.username, u.avatar
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %d: %w", id, err)
	}
	return post, nil
}

// ListPosts returns every post joined with its author, newest first.
func (db *DB) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.category, p.content, p.like_count, p.created_at, u.username, u.avatar
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}
	return posts, nil
}

// IncrementLikes adds exactly 1 to the post's like count in a single UPDATE
// and returns the new count. The count only ever moves up.
func (db *DB) IncrementLikes(ctx context.Context, id int64) (int, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE posts SET like_count = like_count + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("sqlite: incrementing likes for post %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return 0, apperror.NotFound("post", id)
	}

	var count int
	err = db.conn.QueryRowContext(ctx,
		`SELECT like_count FROM posts WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading like count for post %d: %w", id, err)
	}
	return count, nil
}

// DeletePost removes the post and all its comments in one transaction so a
// deleted post never leaves orphaned comments behind.
func (db *DB) DeletePost(ctx context.Context, id int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting comments for post %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("post", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing delete of post %d: %w", id, err)
	}
	return nil
}

// CreateComment inserts a new comment. The caller is expected to have
// verified the post exists; the foreign key backstops that check.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (post_id, user_id, content, created_at)
		 VALUES (?, ?, ?, ?)`,
		comment.PostID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment on post %d: %w", comment.PostID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListComments returns the post's comments joined with each commenter,
// oldest first.
func (db *DB) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.username, u.avatar
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = ?
		 ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for post %d: %w", postID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt,
			&c.Username, &c.Avatar,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}
	return comments, nil
}

func scanPost(row rowScanner) (*model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Category,
		&p.Content,
		&p.LikeCount,
		&p.CreatedAt,
		&p.Username,
		&p.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
