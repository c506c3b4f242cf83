package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/models"
	"github.com/stocktrail/backend/internal/repositories"
	"go.uber.org/zap"
)

type CategoryService struct {
	categoryRepo *repositories.CategoryRepo
	log          *zap.Logger
}

func NewCategoryService(categoryRepo *repositories.CategoryRepo, log *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, log: log}
}

func (s *CategoryService) Create(ctx context.Context, name string, description *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	c := &models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = in.Description
	}

	if err := s.categoryRepo.Update(ctx, c); err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, c.Name)
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the category. Items keep existing with a nulled category
// reference; no audit entries are produced since no item quantity changes.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: category", ErrNotFound)
	}
	return nil
}
