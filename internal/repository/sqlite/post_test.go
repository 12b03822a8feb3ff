package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/model"
)

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "$2a$04$notarealhashbutirrelevant",
		Avatar:       "images/" + username + ".jpg",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, db *DB, userID int64, title string) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:   userID,
		Title:    title,
		Category: "tech",
		Content:  "content of " + title,
	}
	if err := db.CreatePost(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

func TestUserGetByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "siyuan")

	found, err := db.GetUserByUsername(context.Background(), "siyuan")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Role != model.RoleMember {
		t.Errorf("Role = %q, want default %q", found.Role, model.RoleMember)
	}
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByUsername(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSeedUser_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SeedUser(ctx, "test", "hash-a", "images/user1.jpg", model.RoleAdmin); err != nil {
		t.Fatalf("SeedUser() error = %v", err)
	}
	// Second seed must not overwrite the existing account.
	if err := db.SeedUser(ctx, "test", "hash-b", "other.jpg", model.RoleMember); err != nil {
		t.Fatalf("second SeedUser() error = %v", err)
	}

	user, err := db.GetUserByUsername(ctx, "test")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if user.PasswordHash != "hash-a" || user.Role != model.RoleAdmin {
		t.Errorf("seed overwrote existing user: %+v", user)
	}
}

func TestPostCreate_StartsWithZeroLikes(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "author")

	post := &model.Post{
		UserID:    user.ID,
		Title:     "hello",
		Category:  "other",
		Content:   "first post",
		LikeCount: 42, // must be ignored
	}
	if err := db.CreatePost(context.Background(), post); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	found, err := db.GetPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if found.LikeCount != 0 {
		t.Errorf("LikeCount = %d, want 0", found.LikeCount)
	}
}

func TestPostCreate_UnknownUserRejected(t *testing.T) {
	db := newTestDB(t)

	err := db.CreatePost(context.Background(), &model.Post{
		UserID: 777, Title: "orphan", Category: "other", Content: "x",
	})
	if err == nil {
		t.Fatal("CreatePost() with unknown user should fail the foreign key")
	}
}

func TestPostGet_JoinsAuthor(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID, "joined")

	found, err := db.GetPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if found.Username != "author" {
		t.Errorf("Username = %q, want author", found.Username)
	}
	if found.Avatar != user.Avatar {
		t.Errorf("Avatar = %q, want %q", found.Avatar, user.Avatar)
	}
}

func TestPostList_NewestFirstWithAuthors(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "author")
	createTestPost(t, db, user.ID, "first")
	createTestPost(t, db, user.ID, "second")

	posts, err := db.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("ListPosts() returned %d posts, want 2", len(posts))
	}
	if posts[0].Title != "second" {
		t.Errorf("first listed = %q, want second (newest)", posts[0].Title)
	}
	if posts[0].Username != "author" {
		t.Errorf("Username = %q, want author", posts[0].Username)
	}
}

func TestIncrementLikes_TwiceAddsExactlyTwo(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID, "likeable")

	first, err := db.IncrementLikes(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}
	second, err := db.IncrementLikes(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}

	if first != 1 || second != 2 {
		t.Errorf("counts = %d then %d, want 1 then 2", first, second)
	}
}

func TestIncrementLikes_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.IncrementLikes(context.Background(), 31337)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListComments_AscendingOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID, "discussed")

	for _, text := range []string{"first", "second", "third"} {
		c := &model.Comment{PostID: post.ID, UserID: user.ID, Content: text}
		if err := db.CreateComment(ctx, c); err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
	}

	comments, err := db.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("ListComments() returned %d comments, want 3", len(comments))
	}
	if comments[0].Content != "first" || comments[2].Content != "third" {
		t.Errorf("order = [%s %s %s], want oldest first",
			comments[0].Content, comments[1].Content, comments[2].Content)
	}
	if comments[0].Username != "author" {
		t.Errorf("Username = %q, want author", comments[0].Username)
	}

	// A new comment shows up last on re-fetch.
	late := &model.Comment{PostID: post.ID, UserID: user.ID, Content: "latest"}
	if err := db.CreateComment(ctx, late); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	comments, err = db.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if comments[len(comments)-1].Content != "latest" {
		t.Errorf("last comment = %q, want latest", comments[len(comments)-1].Content)
	}
}

func TestDeletePost_CascadesComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID, "doomed")

	c := &model.Comment{PostID: post.ID, UserID: user.ID, Content: "soon gone"}
	if err := db.CreateComment(ctx, c); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	if err := db.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}

	if _, err := db.GetPost(ctx, post.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}
	comments, err := db.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("comments left behind after cascade delete: %v", comments)
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	db := newTestDB(t)

	if err := db.DeletePost(context.Background(), 4242); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
