package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lvsiyuan/personal-site/internal/apperror"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/repository"
)

// In-memory fakes implementing the repository interfaces, so service tests
// exercise business rules without a database.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProjectRepo struct {
	projects map[int64]*model.Project
	nextID   int64
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[int64]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, p *model.Project) error {
	m.nextID++
	p.ID = m.nextID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	stored := *p
	m.projects[p.ID] = &stored
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	result := *p
	return &result, nil
}

func (m *mockProjectRepo) List(_ context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	result := []model.Project{}
	for _, p := range m.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Tech != "" && !strings.Contains(strings.Join(p.Tech, ","), filter.Tech) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockProjectRepo) Update(_ context.Context, p *model.Project) error {
	if _, ok := m.projects[p.ID]; !ok {
		return apperror.NotFound("project", p.ID)
	}
	p.UpdatedAt = time.Now()
	stored := *p
	m.projects[p.ID] = &stored
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.projects[id]; !ok {
		return apperror.NotFound("project", id)
	}
	delete(m.projects, id)
	return nil
}

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u *model.User) error {
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	if u.Role == "" {
		u.Role = model.RoleMember
	}
	stored := *u
	m.users[u.Username] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "user not found"}
	}
	result := *u
	return &result, nil
}

type mockPostRepo struct {
	posts    map[int64]*model.Post
	comments map[int64][]model.Comment
	nextID   int64
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64][]model.Comment),
	}
}

func (m *mockPostRepo) CreatePost(_ context.Context, p *model.Post) error {
	m.nextID++
	p.ID = m.nextID
	p.LikeCount = 0
	p.CreatedAt = time.Now()
	stored := *p
	m.posts[p.ID] = &stored
	return nil
}

func (m *mockPostRepo) GetPost(_ context.Context, id int64) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	result := *p
	return &result, nil
}

func (m *mockPostRepo) ListPosts(_ context.Context) ([]model.Post, error) {
	result := []model.Post{}
	for _, p := range m.posts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockPostRepo) IncrementLikes(_ context.Context, id int64) (int, error) {
	p, ok := m.posts[id]
	if !ok {
		return 0, apperror.NotFound("post", id)
	}
	p.LikeCount++
	return p.LikeCount, nil
}

func (m *mockPostRepo) DeletePost(_ context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return apperror.NotFound("post", id)
	}
	delete(m.posts, id)
	delete(m.comments, id)
	return nil
}

func (m *mockPostRepo) CreateComment(_ context.Context, c *model.Comment) error {
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	m.comments[c.PostID] = append(m.comments[c.PostID], *c)
	return nil
}

func (m *mockPostRepo) ListComments(_ context.Context, postID int64) ([]model.Comment, error) {
	return append([]model.Comment{}, m.comments[postID]...), nil
}

// Interface conformance for the fakes.
var (
	_ repository.ProjectRepository = (*mockProjectRepo)(nil)
	_ repository.UserRepository    = (*mockUserRepo)(nil)
	_ repository.PostRepository    = (*mockPostRepo)(nil)
)
