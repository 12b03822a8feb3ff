package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/lvsiyuan/personal-site/internal/auth"
	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/service"
)

// PageHandler serves the server-rendered public and admin pages. Each page
// is its own template set so a page can only reference blocks it parsed.
// Templates are parsed once at startup and reused.
type PageHandler struct {
	templates map[string]*template.Template
	projects  *service.ProjectService
	works     *service.WorkService
	community *service.CommunityService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

// NewPageHandler parses all page templates from templateDir.
func NewPageHandler(
	templateDir string,
	projects *service.ProjectService,
	works *service.WorkService,
	community *service.CommunityService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) (*PageHandler, error) {
	pages := []string{"projects.html", "works.html", "community.html", "post.html", "admin.html"}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &PageHandler{
		templates: templates,
		projects:  projects,
		works:     works,
		community: community,
		tokens:    tokens,
		logger:    logger,
	}, nil
}

// session resolves the caller's session from the request, or a zero Session
// for anonymous visitors. Pages receive it as explicit template data.
func (h *PageHandler) session(r *http.Request) auth.Session {
	session, err := auth.SessionFromRequest(r, h.tokens)
	if err != nil {
		return auth.Session{}
	}
	return session
}

func (h *PageHandler) render(w http.ResponseWriter, page string, data map[string]interface{}) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleProjectsPage renders the project showcase.
//
// HTTP: GET /projects
func (h *PageHandler) HandleProjectsPage(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), "", "")
	if err != nil {
		h.logger.Error("loading projects page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, "projects.html", map[string]interface{}{
		"Title":    "Projects",
		"Projects": projects,
		"Session":  h.session(r),
	})
}

// HandleWorksPage renders the works gallery, pre-filtered when the category
// query parameter is present.
//
// HTTP: GET /works?category=
func (h *PageHandler) HandleWorksPage(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	works, err := h.works.List(r.Context(), category)
	if err != nil {
		h.logger.Error("loading works page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, "works.html", map[string]interface{}{
		"Title":    "Works",
		"Works":    works,
		"Category": category,
		"Session":  h.session(r),
	})
}

// HandleCommunityPage renders the community post list. The composer is only
// shown to signed-in members; the template keys off the session value.
//
// HTTP: GET /community
func (h *PageHandler) HandleCommunityPage(w http.ResponseWriter, r *http.Request) {
	posts, err := h.community.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("loading community page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, "community.html", map[string]interface{}{
		"Title":   "Community",
		"Posts":   posts,
		"Session": h.session(r),
	})
}

// HandlePostPage renders a single post with its comments.
//
// HTTP: GET /community/posts/{id}
func (h *PageHandler) HandlePostPage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, comments, err := h.community.GetPostWithComments(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.render(w, "post.html", map[string]interface{}{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
		"Session":  h.session(r),
	})
}

// HandleAdminPage renders the admin dashboard. Visitors without an admin
// session get the login form instead of the management tables.
//
// HTTP: GET /admin
func (h *PageHandler) HandleAdminPage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)

	data := map[string]interface{}{
		"Title":   "Admin",
		"Session": session,
	}

	if session.Role == model.RoleAdmin {
		projects, err := h.projects.List(r.Context(), "", "")
		if err != nil {
			h.logger.Error("loading admin page", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		works, err := h.works.List(r.Context(), "")
		if err != nil {
			h.logger.Error("loading admin page", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data["Projects"] = projects
		data["Works"] = works
	}

	h.render(w, "admin.html", data)
}
