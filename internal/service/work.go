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

// FilterAll is the category value meaning "no filter" on the works listing.
const FilterAll = "all"

// WorkService handles the works gallery.
type WorkService struct {
	repo   repository.WorkRepository
	logger *slog.Logger
}

func NewWorkService(repo repository.WorkRepository, logger *slog.Logger) *WorkService {
	return &WorkService{repo: repo, logger: logger}
}

// List returns works newest first. Category "" and "all" both mean no
// filter.
func (s *WorkService) List(ctx context.Context, category string) ([]model.Work, error) {
	category = strings.TrimSpace(category)
	if category == FilterAll {
		category = ""
	}

	works, err := s.repo.ListWorks(ctx, repository.WorkFilter{Category: category})
	if err != nil {
		s.logger.Error("failed to list works", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing works: %w", err)
	}
	return works, nil
}

func (s *WorkService) Get(ctx context.Context, id int64) (*model.Work, error) {
	return s.repo.GetWorkByID(ctx, id)
}

// Create validates required fields and inserts the work.
func (s *WorkService) Create(ctx context.Context, work *model.Work) (*model.Work, error) {
	if err := validateWork(work); err != nil {
		return nil, err
	}

	if err := s.repo.CreateWork(ctx, work); err != nil {
		s.logger.Error("failed to create work",
			slog.String("title", work.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating work: %w", err)
	}

	s.logger.Info("work created",
		slog.Int64("id", work.ID),
		slog.String("title", work.Title),
	)
	return work, nil
}

// Update overwrites every mutable field and refreshes updated_at.
func (s *WorkService) Update(ctx context.Context, id int64, work *model.Work) (*model.Work, error) {
	work.ID = id
	if err := validateWork(work); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWork(ctx, work); err != nil {
		return nil, err
	}

	s.logger.Info("work updated", slog.Int64("id", id))
	return work, nil
}

func (s *WorkService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteWork(ctx, id); err != nil {
		return err
	}
	s.logger.Info("work deleted", slog.Int64("id", id))
	return nil
}

func validateWork(work *model.Work) error {
	work.Title = strings.TrimSpace(work.Title)
	work.Category = strings.TrimSpace(work.Category)
	work.CategoryName = strings.TrimSpace(work.CategoryName)

	if work.Title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if work.Category == "" {
		return apperror.ValidationFailed("category", "category is required")
	}
	if work.CategoryName == "" {
		return apperror.ValidationFailed("category_name", "category name is required")
	}
	return nil
}
