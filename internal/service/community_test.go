package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lvsiyuan/personal-site/internal/apperror"
)

func newTestCommunityService() (*CommunityService, *mockPostRepo) {
	repo := newMockPostRepo()
	return NewCommunityService(repo, testLogger()), repo
}

func TestCreatePost_Success(t *testing.T) {
	svc, _ := newTestCommunityService()

	post, err := svc.CreatePost(context.Background(), 1, "hello", "tech", "first post")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.ID == 0 {
		t.Error("expected post to have an ID")
	}
	if post.LikeCount != 0 {
		t.Errorf("LikeCount = %d, want 0", post.LikeCount)
	}
}

func TestCreatePost_MissingFields(t *testing.T) {
	svc, _ := newTestCommunityService()
	ctx := context.Background()

	cases := []struct {
		name     string
		userID   int64
		title    string
		category string
		content  string
	}{
		{"no user", 0, "t", "c", "body"},
		{"no title", 1, "", "c", "body"},
		{"no category", 1, "t", "", "body"},
		{"no content", 1, "t", "c", ""},
		{"whitespace content", 1, "t", "c", "   "},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.userID, tt.title, tt.category, tt.content)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLikePost_TwiceAddsExactlyTwo(t *testing.T) {
	svc, _ := newTestCommunityService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "likeable", "other", "body")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if _, err := svc.LikePost(ctx, post.ID); err != nil {
		t.Fatalf("LikePost() error = %v", err)
	}
	count, err := svc.LikePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("LikePost() error = %v", err)
	}
	if count != 2 {
		t.Errorf("like count = %d, want 2", count)
	}
}

func TestLikePost_NotFound(t *testing.T) {
	svc, _ := newTestCommunityService()

	_, err := svc.LikePost(context.Background(), 99)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAddComment_PostMustExist(t *testing.T) {
	svc, _ := newTestCommunityService()

	_, err := svc.AddComment(context.Background(), 42, 1, "into the void")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAddComment_Validation(t *testing.T) {
	svc, _ := newTestCommunityService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "t", "c", "body")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if _, err := svc.AddComment(ctx, post.ID, 0, "hi"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing user: error = %v, want ErrValidation", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, 1, ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing content: error = %v, want ErrValidation", err)
	}
}

func TestGetPostWithComments(t *testing.T) {
	svc, _ := newTestCommunityService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "discussed", "c", "body")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, 2, "first"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, 3, "second"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	found, comments, err := svc.GetPostWithComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostWithComments() error = %v", err)
	}
	if found.ID != post.ID {
		t.Errorf("post ID = %d, want %d", found.ID, post.ID)
	}
	if len(comments) != 2 || comments[1].Content != "second" {
		t.Errorf("comments = %v, want [first second]", comments)
	}
}

func TestGetPostWithComments_NotFound(t *testing.T) {
	svc, _ := newTestCommunityService()

	_, _, err := svc.GetPostWithComments(context.Background(), 7)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
