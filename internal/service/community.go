package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/repository"
)

// CommunityService handles posts, comments, and likes.
type CommunityService struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

func NewCommunityService(posts repository.PostRepository, logger *slog.Logger) *CommunityService {
	return &CommunityService{posts: posts, logger: logger}
}

// ListPosts returns every post with its author, newest first.
func (s *CommunityService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// GetPostWithComments returns the post (with author) and its comments in
// ascending created order.
func (s *CommunityService) GetPostWithComments(ctx context.Context, id int64) (*model.Post, []model.Comment, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.posts.ListComments(ctx, id)
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("listing comments: %w", err)
	}
	return post, comments, nil
}

// CreatePost validates that every field is present and inserts the post
// with a zero like count.
func (s *CommunityService) CreatePost(ctx context.Context, userID int64, title, category, content string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	content = strings.TrimSpace(content)

	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user id is required")
	}
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if category == "" {
		return nil, apperror.ValidationFailed("category", "category is required")
	}
	if content == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	post := &model.Post{
		UserID:   userID,
		Title:    title,
		Category: category,
		Content:  content,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("id", post.ID),
		slog.Int64("user_id", userID),
	)
	return post, nil
}

// LikePost increments the post's like count by exactly 1 and returns the
// new count. Repeat likes are not deduplicated.
func (s *CommunityService) LikePost(ctx context.Context, id int64) (int, error) {
	count, err := s.posts.IncrementLikes(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info("post liked",
		slog.Int64("id", id),
		slog.Int("like_count", count),
	)
	return count, nil
}

// AddComment validates presence, confirms the post exists, and inserts the
// comment.
func (s *CommunityService) AddComment(ctx context.Context, postID, userID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)

	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user id is required")
	}
	if content == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("id", comment.ID),
		slog.Int64("post_id", postID),
	)
	return comment, nil
}

// DeletePost removes a post and its comments.
func (s *CommunityService) DeletePost(ctx context.Context, id int64) error {
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", slog.Int64("id", id))
	return nil
}
