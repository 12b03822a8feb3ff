// Package service contains the business rules sitting between the HTTP
// handlers and the repositories. Services accept plain values, validate
// them, and return domain errors; they know nothing about HTTP.
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

// ProjectService handles the projects showcase.
type ProjectService struct {
	repo   repository.ProjectRepository
	logger *slog.Logger
}

func NewProjectService(repo repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// List returns projects newest first, filtered by status equality and tech
// substring when those arguments are non-empty.
func (s *ProjectService) List(ctx context.Context, status, tech string) ([]model.Project, error) {
	projects, err := s.repo.List(ctx, repository.ProjectFilter{
		Status: strings.TrimSpace(status),
		Tech:   strings.TrimSpace(tech),
	})
	if err != nil {
		s.logger.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates required fields and inserts the project.
func (s *ProjectService) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	project.Title = strings.TrimSpace(project.Title)
	project.Status = strings.TrimSpace(project.Status)

	if project.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if project.Status == "" {
		return nil, apperror.ValidationFailed("status", "status is required")
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error("failed to create project",
			slog.String("title", project.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created",
		slog.Int64("id", project.ID),
		slog.String("title", project.Title),
	)
	return project, nil
}

// Update overwrites every mutable field of the project with the given
// values and refreshes updated_at.
func (s *ProjectService) Update(ctx context.Context, id int64, project *model.Project) (*model.Project, error) {
	project.ID = id
	project.Title = strings.TrimSpace(project.Title)
	project.Status = strings.TrimSpace(project.Status)

	if project.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if project.Status == "" {
		return nil, apperror.ValidationFailed("status", "status is required")
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", slog.Int64("id", id))
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", slog.Int64("id", id))
	return nil
}
