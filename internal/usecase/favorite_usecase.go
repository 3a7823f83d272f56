package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

// FavoriteUsecase manages the user<->ad favorite links.
type FavoriteUsecase struct {
	favoriteRepo repository.FavoriteRepository
	adRepo       repository.AdRepository
	logger       *logger.Logger
}

func NewFavoriteUsecase(
	favoriteRepo repository.FavoriteRepository,
	adRepo repository.AdRepository,
	log *logger.Logger,
) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		adRepo:       adRepo,
		logger:       log,
	}
}

// Toggle adds the ad to the user's favorites, or removes it if already
// present. Returns the resulting favorited state.
func (uc *FavoriteUsecase) Toggle(ctx context.Context, userID, adID string) (bool, error) {
	exists, err := uc.adRepo.Exists(ctx, adID)
	if err != nil {
		uc.logger.Error("Failed to check ad existence", zap.String("ad_id", adID), zap.Error(err))
		return false, fmt.Errorf("FavoriteUsecase.Toggle: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: ad %s", entity.ErrNotFound, adID)
	}

	favorited, err := uc.favoriteRepo.Exists(ctx, userID, adID)
	if err != nil {
		return false, fmt.Errorf("FavoriteUsecase.Toggle: %w", err)
	}

	if favorited {
		if err := uc.favoriteRepo.Remove(ctx, userID, adID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return false, fmt.Errorf("FavoriteUsecase.Toggle: %w", err)
		}
		return false, nil
	}

	if err := uc.favoriteRepo.Add(ctx, userID, adID); err != nil {
		// Concurrent toggle may have added the link already.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return true, nil
		}
		return false, fmt.Errorf("FavoriteUsecase.Toggle: %w", err)
	}
	return true, nil
}

// Remove explicitly deletes the favorite link.
func (uc *FavoriteUsecase) Remove(ctx context.Context, userID, adID string) error {
	if err := uc.favoriteRepo.Remove(ctx, userID, adID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrNotFound
		}
		return fmt.Errorf("FavoriteUsecase.Remove: %w", err)
	}
	return nil
}

// IsFavorited reports whether the user favorited the ad.
func (uc *FavoriteUsecase) IsFavorited(ctx context.Context, userID, adID string) (bool, error) {
	favorited, err := uc.favoriteRepo.Exists(ctx, userID, adID)
	if err != nil {
		return false, fmt.Errorf("FavoriteUsecase.IsFavorited: %w", err)
	}
	return favorited, nil
}

// ListFavorites resolves the user's favorite links to full ads. Links to
// ads deleted in the meantime are skipped.
func (uc *FavoriteUsecase) ListFavorites(ctx context.Context, userID string) ([]*entity.Ad, error) {
	adIDs, err := uc.favoriteRepo.ListAdIDsByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list favorites from repository", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("FavoriteUsecase.ListFavorites: %w", err)
	}

	ads := make([]*entity.Ad, 0, len(adIDs))
	for _, adID := range adIDs {
		ad, err := uc.adRepo.GetByID(ctx, adID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("FavoriteUsecase.ListFavorites: %w", err)
		}
		ads = append(ads, ad)
	}
	return ads, nil
}
