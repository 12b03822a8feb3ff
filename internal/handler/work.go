package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lvsiyuan/personal-site/internal/model"
	"github.com/lvsiyuan/personal-site/internal/service"
)

// WorkHandler exposes the works gallery CRUD endpoints.
type WorkHandler struct {
	works  *service.WorkService
	logger *slog.Logger
}

// NewWorkHandler creates a new WorkHandler.
func NewWorkHandler(works *service.WorkService, logger *slog.Logger) *WorkHandler {
	return &WorkHandler{works: works, logger: logger}
}

// HandleList returns works, newest first. The category query parameter
// filters by exact category; "all" and empty mean no filter.
//
// HTTP: GET /api/works?category=
func (h *WorkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	works, err := h.works.List(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, works)
}

// HandleGet returns a single work by id.
//
// HTTP: GET /api/works/{id}
func (h *WorkHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	work, err := h.works.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, work)
}

// HandleCreate stores a new work and returns its id.
//
// HTTP: POST /api/works
func (h *WorkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var work model.Work
	if err := json.NewDecoder(r.Body).Decode(&work); err != nil {
		h.logger.Warn("invalid work JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	created, err := h.works.Create(r.Context(), &work)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": created.ID})
}

// HandleUpdate overwrites every mutable field of an existing work.
//
// HTTP: PUT /api/works/{id}
func (h *WorkHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var work model.Work
	if err := json.NewDecoder(r.Body).Decode(&work); err != nil {
		h.logger.Warn("invalid work JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	updated, err := h.works.Update(r.Context(), id, &work)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a work.
//
// HTTP: DELETE /api/works/{id}
func (h *WorkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.works.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
