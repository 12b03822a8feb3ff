package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/service"
)

// CommunityHandler exposes the community endpoints: login, posts, likes
// and comments.
type CommunityHandler struct {
	community *service.CommunityService
	auth      *service.AuthService
	logger    *slog.Logger
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(community *service.CommunityService, auth *service.AuthService, logger *slog.Logger) *CommunityHandler {
	return &CommunityHandler{community: community, auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createPostRequest struct {
	UserID   int64  `json:"user_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type createCommentRequest struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

// postDetailResponse is the GET /api/community/posts/{id} payload.
type postDetailResponse struct {
	Post     *model.Post     `json:"post"`
	Comments []model.Comment `json:"comments"`
}

// HandleLogin verifies community credentials and returns the member profile.
// No session token is issued here; the profile never carries a password.
//
// HTTP: POST /api/community/login
func (h *CommunityHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	profile, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleListPosts returns all posts joined with their author, newest first.
//
// HTTP: GET /api/community/posts
func (h *CommunityHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.community.ListPosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleGetPost returns one post together with its comments in ascending
// creation order.
//
// HTTP: GET /api/community/posts/{id}
func (h *CommunityHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	post, comments, err := h.community.GetPostWithComments(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postDetailResponse{Post: post, Comments: comments})
}

// HandleCreatePost stores a new post and returns its id.
//
// HTTP: POST /api/community/posts
func (h *CommunityHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid post JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	post, err := h.community.CreatePost(r.Context(), req.UserID, req.Title, req.Category, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": post.ID})
}

// HandleLike increments a post's like counter and returns the new count.
//
// HTTP: POST /api/community/posts/{id}/like
func (h *CommunityHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := h.community.LikePost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"like_count": count})
}

// HandleAddComment stores a comment on an existing post and returns its id.
//
// HTTP: POST /api/community/posts/{id}/comments
func (h *CommunityHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid comment JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	comment, err := h.community.AddComment(r.Context(), postID, req.UserID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": comment.ID})
}

// HandleDeletePost removes a post and all of its comments.
//
// HTTP: DELETE /api/community/posts/{id}
func (h *CommunityHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.community.DeletePost(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
