// Package client provides a typed Go client for the personal-site API.
// Every endpoint has a typed method; errors carry the server's error code
// and message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lvsiyuan/personal-site/internal/model"
)

// APIError is a non-2xx response decoded into the server's error shape.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable error type, e.g. "not_found"
	Message string // human-readable message from the server
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to a running server instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. for tests or
// custom timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken attaches an admin session token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do performs one API round-trip: encode body, send, decode the response
// into out on 2xx or into an *APIError otherwise.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Code = payload.Error
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

type idResponse struct {
	ID int64 `json:"id"`
}

// ListProjects returns projects filtered by status and tech; empty strings
// mean no filter.
func (c *Client) ListProjects(ctx context.Context, status, tech string) ([]model.Project, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if tech != "" {
		query.Set("tech", tech)
	}
	path := "/api/projects"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, path, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns one project by id.
func (c *Client) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject stores a new project and returns its id. Requires an admin
// token.
func (c *Client) CreateProject(ctx context.Context, project *model.Project) (int64, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/projects", project, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateProject overwrites a project's mutable fields. Requires an admin
// token.
func (c *Client) UpdateProject(ctx context.Context, id int64, project *model.Project) (*model.Project, error) {
	var updated model.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), project, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes a project. Requires an admin token.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
}

// ListWorks returns works in the given category; "" or "all" return
// everything.
func (c *Client) ListWorks(ctx context.Context, category string) ([]model.Work, error) {
	path := "/api/works"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var works []model.Work
	if err := c.do(ctx, http.MethodGet, path, nil, &works); err != nil {
		return nil, err
	}
	return works, nil
}

// GetWork returns one work by id.
func (c *Client) GetWork(ctx context.Context, id int64) (*model.Work, error) {
	var work model.Work
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/works/%d", id), nil, &work); err != nil {
		return nil, err
	}
	return &work, nil
}

// CreateWork stores a new work and returns its id. Requires an admin token.
func (c *Client) CreateWork(ctx context.Context, work *model.Work) (int64, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/works", work, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateWork overwrites a work's mutable fields. Requires an admin token.
func (c *Client) UpdateWork(ctx context.Context, id int64, work *model.Work) (*model.Work, error) {
	var updated model.Work
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/works/%d", id), work, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWork removes a work. Requires an admin token.
func (c *Client) DeleteWork(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/works/%d", id), nil, nil)
}

// Login verifies community credentials and returns the member profile.
func (c *Client) Login(ctx context.Context, username, password string) (*model.Profile, error) {
	body := map[string]string{"username": username, "password": password}
	var profile model.Profile
	if err := c.do(ctx, http.MethodPost, "/api/community/login", body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AdminLogin verifies admin credentials, stores the returned token on the
// client, and returns the profile.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*model.Profile, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string         `json:"token"`
		User  *model.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// ListPosts returns all community posts, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, "/api/community/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns one post with its comments.
func (c *Client) GetPost(ctx context.Context, id int64) (*model.Post, []model.Comment, error) {
	var resp struct {
		Post     *model.Post     `json:"post"`
		Comments []model.Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/community/posts/%d", id), nil, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Post, resp.Comments, nil
}

// CreatePost stores a new post for the given user and returns its id.
func (c *Client) CreatePost(ctx context.Context, userID int64, title, category, content string) (int64, error) {
	body := map[string]interface{}{
		"user_id":  userID,
		"title":    title,
		"category": category,
		"content":  content,
	}
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/community/posts", body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// LikePost increments a post's like counter and returns the new count.
func (c *Client) LikePost(ctx context.Context, id int64) (int, error) {
	var resp struct {
		LikeCount int `json:"like_count"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/community/posts/%d/like", id), nil, &resp); err != nil {
		return 0, err
	}
	return resp.LikeCount, nil
}

// AddComment stores a comment on a post and returns its id.
func (c *Client) AddComment(ctx context.Context, postID, userID int64, content string) (int64, error) {
	body := map[string]interface{}{"user_id": userID, "content": content}
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/community/posts/%d/comments", postID), body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// DeletePost removes a post and its comments. Requires an admin token.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/community/posts/%d", id), nil, nil)
}
