package model

import "time"

// Post is a community post. Username and Avatar are populated from the join
// with the author row on reads; they are never written to the posts table.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`

	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Comment is a comment on a post. Username and Avatar come from the join
// with the commenter row, same as on Post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
