package repository

import (
	"context"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByAd returns the ad's comments ordered newest first.
	ListByAd(ctx context.Context, adID string) ([]*entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id string) error
}
