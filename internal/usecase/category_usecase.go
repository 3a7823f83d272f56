package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

type CategoryUsecase struct {
	categoryRepo repository.CategoryRepository
	logger       *logger.Logger
}

func NewCategoryUsecase(categoryRepo repository.CategoryRepository, log *logger.Logger) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		logger:       log,
	}
}

func (uc *CategoryUsecase) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to get category from repository", zap.String("category_id", id), zap.Error(err))
		return nil, fmt.Errorf("CategoryUsecase.GetCategory: %w", err)
	}
	return category, nil
}

func (uc *CategoryUsecase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list categories from repository", zap.Error(err))
		return nil, fmt.Errorf("CategoryUsecase.ListCategories: %w", err)
	}
	return categories, nil
}

func (uc *CategoryUsecase) CreateCategory(ctx context.Context, name, slug, description string) (*entity.Category, error) {
	category, err := entity.NewCategory(name, slug, description)
	if err != nil {
		return nil, err
	}

	createdID, err := uc.categoryRepo.Create(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: category slug already exists", entity.ErrConflict)
		}
		uc.logger.Error("Failed to create category in repository", zap.Error(err))
		return nil, fmt.Errorf("CategoryUsecase.CreateCategory: %w", err)
	}
	category.ID = createdID
	return category, nil
}

type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
}

func (uc *CategoryUsecase) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*entity.Category, error) {
	category, err := uc.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Slug != nil {
		category.Slug = *input.Slug
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to update category in repository", zap.String("category_id", id), zap.Error(err))
		return nil, fmt.Errorf("CategoryUsecase.UpdateCategory: %w", err)
	}
	return category, nil
}

func (uc *CategoryUsecase) DeleteCategory(ctx context.Context, id string) error {
	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrNotFound
		}
		uc.logger.Error("Failed to delete category from repository", zap.String("category_id", id), zap.Error(err))
		return fmt.Errorf("CategoryUsecase.DeleteCategory: %w", err)
	}
	return nil
}
