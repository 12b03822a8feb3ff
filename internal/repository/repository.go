// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/lvsiyuan/personal-site/internal/model"
)

// ProjectFilter narrows a project listing. Zero values mean "no filter";
// both conditions are ANDed when present.
type ProjectFilter struct {
	Status string // exact match on status
	Tech   string // substring match against the stored tech list
}

// WorkFilter narrows a works listing. An empty Category means "no filter".
type WorkFilter struct {
	Category string
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
}

type WorkRepository interface {
	CreateWork(ctx context.Context, work *model.Work) error
	GetWorkByID(ctx context.Context, id int64) (*model.Work, error)
	ListWorks(ctx context.Context, filter WorkFilter) ([]model.Work, error)
	UpdateWork(ctx context.Context, work *model.Work) error
	DeleteWork(ctx context.Context, id int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// PostRepository covers posts and their comments. Reads return rows joined
// with the author's username and avatar.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	// IncrementLikes adds exactly 1 to the post's like count and returns
	// the new count.
	IncrementLikes(ctx context.Context, id int64) (int, error)
	// DeletePost removes the post and all its comments.
	DeletePost(ctx context.Context, id int64) error
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListComments returns the post's comments in ascending created order.
	ListComments(ctx context.Context, postID int64) ([]model.Comment, error)
}
