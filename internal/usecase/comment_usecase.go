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

// CommentUsecase orchestrates comment use cases. Mutations are gated by the
// same ownership guard as ads.
type CommentUsecase struct {
	commentRepo repository.CommentRepository
	adRepo      repository.AdRepository
	logger      *logger.Logger
}

func NewCommentUsecase(
	commentRepo repository.CommentRepository,
	adRepo repository.AdRepository,
	log *logger.Logger,
) *CommentUsecase {
	return &CommentUsecase{
		commentRepo: commentRepo,
		adRepo:      adRepo,
		logger:      log,
	}
}

func (uc *CommentUsecase) GetComment(ctx context.Context, id string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to get comment from repository", zap.String("comment_id", id), zap.Error(err))
		return nil, fmt.Errorf("CommentUsecase.GetComment: %w", err)
	}
	return comment, nil
}

// ListAdComments returns the ad's comments newest first, failing NotFound
// when the ad itself is absent.
func (uc *CommentUsecase) ListAdComments(ctx context.Context, adID string) ([]*entity.Comment, error) {
	exists, err := uc.adRepo.Exists(ctx, adID)
	if err != nil {
		uc.logger.Error("Failed to check ad existence", zap.String("ad_id", adID), zap.Error(err))
		return nil, fmt.Errorf("CommentUsecase.ListAdComments: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: ad %s", entity.ErrNotFound, adID)
	}

	comments, err := uc.commentRepo.ListByAd(ctx, adID)
	if err != nil {
		uc.logger.Error("Failed to list comments from repository", zap.String("ad_id", adID), zap.Error(err))
		return nil, fmt.Errorf("CommentUsecase.ListAdComments: %w", err)
	}
	return comments, nil
}

type CreateCommentInput struct {
	AdID    string
	UserID  string
	Content string
	Rating  *int
}

func (uc *CommentUsecase) CreateComment(ctx context.Context, input CreateCommentInput) (*entity.Comment, error) {
	exists, err := uc.adRepo.Exists(ctx, input.AdID)
	if err != nil {
		uc.logger.Error("Failed to check ad existence", zap.String("ad_id", input.AdID), zap.Error(err))
		return nil, fmt.Errorf("CommentUsecase.CreateComment: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: ad %s", entity.ErrNotFound, input.AdID)
	}

	comment, err := entity.NewComment(input.AdID, input.UserID, input.Content, input.Rating)
	if err != nil {
		return nil, err
	}

	createdID, err := uc.commentRepo.Create(ctx, comment)
	if err != nil {
		uc.logger.Error("Failed to create comment in repository", zap.String("ad_id", input.AdID), zap.Error(err))
		return nil, fmt.Errorf("CommentUsecase.CreateComment: %w", err)
	}
	comment.ID = createdID
	return comment, nil
}

// UpdateCommentInput is the explicit partial-update structure for comments.
type UpdateCommentInput struct {
	Content *string
	Rating  *int
}

func (uc *CommentUsecase) UpdateComment(ctx context.Context, commentID string, input UpdateCommentInput, actorID string) (*entity.Comment, error) {
	comment, err := uc.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := entity.RequireOwner(comment, actorID); err != nil {
		uc.logger.Warn("Forbidden comment update attempt",
			zap.String("comment_id", commentID), zap.String("author_id", comment.UserID), zap.String("actor_id", actorID))
		return nil, err
	}

	if input.Content != nil {
		comment.Content = *input.Content
	}
	if input.Rating != nil {
		comment.Rating = input.Rating
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}
	comment.UpdatedAt = time.Now().UTC()

	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to update comment in repository", zap.String("comment_id", commentID), zap.Error(err))
		return nil, fmt.Errorf("CommentUsecase.UpdateComment: %w", err)
	}
	return comment, nil
}

func (uc *CommentUsecase) DeleteComment(ctx context.Context, commentID, actorID string) error {
	comment, err := uc.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := entity.RequireOwner(comment, actorID); err != nil {
		uc.logger.Warn("Forbidden comment delete attempt",
			zap.String("comment_id", commentID), zap.String("author_id", comment.UserID), zap.String("actor_id", actorID))
		return err
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrNotFound
		}
		uc.logger.Error("Failed to delete comment from repository", zap.String("comment_id", commentID), zap.Error(err))
		return fmt.Errorf("CommentUsecase.DeleteComment: %w", err)
	}
	return nil
}
