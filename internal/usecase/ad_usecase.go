package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/cache"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

// AdEventPublisher pushes ad lifecycle events to the message bus. Both the
// publisher and the cache are optional collaborators; the usecase nil-checks
// them and never fails a request over them.
type AdEventPublisher interface {
	PublishAdCreated(ctx context.Context, ad *entity.Ad) error
	PublishAdUpdated(ctx context.Context, ad *entity.Ad) error
	PublishAdDeleted(ctx context.Context, adID string) error
	PublishAdStatusChanged(ctx context.Context, adID string, from, to entity.AdStatus) error
}

func adCacheKey(adID string) string {
	return fmt.Sprintf("ad:%s", adID)
}

const adCacheTTL = 5 * time.Minute

// AdUsecase orchestrates validators, the ownership guard, the status
// transition table and the persistence collaborator for ad use cases.
type AdUsecase struct {
	adRepo       repository.AdRepository
	categoryRepo repository.CategoryRepository
	cacheRepo    cache.CacheRepository
	publisher    AdEventPublisher
	logger       *logger.Logger

	defaultPageSize int
	maxPageSize     int
}

func NewAdUsecase(
	adRepo repository.AdRepository,
	categoryRepo repository.CategoryRepository,
	cacheRepo cache.CacheRepository,
	publisher AdEventPublisher,
	log *logger.Logger,
	defaultPageSize, maxPageSize int,
) *AdUsecase {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &AdUsecase{
		adRepo:          adRepo,
		categoryRepo:    categoryRepo,
		cacheRepo:       cacheRepo,
		publisher:       publisher,
		logger:          log,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetAd returns the ad or entity.ErrNotFound. Reads go through the cache
// when one is wired.
func (uc *AdUsecase) GetAd(ctx context.Context, id string) (*entity.Ad, error) {
	if uc.cacheRepo != nil {
		key := adCacheKey(id)
		cachedBytes, err := uc.cacheRepo.Get(ctx, key)
		if err == nil {
			var cached entity.Ad
			if unmarshalErr := json.Unmarshal(cachedBytes, &cached); unmarshalErr == nil {
				uc.logger.Debug("Ad fetched from cache", zap.String("key", key))
				return &cached, nil
			}
			if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted data from cache", zap.String("key", key), zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to get ad from cache", zap.String("key", key), zap.Error(err))
		}
	}

	ad, err := uc.adRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to get ad from repository", zap.String("ad_id", id), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.GetAd: %w", err)
	}

	uc.cacheAd(ctx, ad)
	return ad, nil
}

// ListAdsInput narrows and paginates the public ad listing. Status defaults
// to published.
type ListAdsInput struct {
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	Location   string
	Bedrooms   *int
	Status     entity.AdStatus
	Offset     int
	Limit      int
}

// ListAdsOutput carries one page plus the pre-pagination total.
type ListAdsOutput struct {
	Ads        []*entity.Ad
	TotalCount int64
}

func (uc *AdUsecase) ListAds(ctx context.Context, input ListAdsInput) (*ListAdsOutput, error) {
	if input.Status == "" {
		input.Status = entity.StatusPublished
	}
	if input.Limit <= 0 {
		input.Limit = uc.defaultPageSize
	}
	if input.Limit > uc.maxPageSize {
		input.Limit = uc.maxPageSize
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	filter := repository.AdFilter{
		CategoryID: input.CategoryID,
		MinPrice:   input.MinPrice,
		MaxPrice:   input.MaxPrice,
		Location:   input.Location,
		Bedrooms:   input.Bedrooms,
		Status:     input.Status,
		Offset:     input.Offset,
		Limit:      input.Limit,
	}

	ads, total, err := uc.adRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list ads from repository", zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.ListAds: %w", err)
	}
	return &ListAdsOutput{Ads: ads, TotalCount: total}, nil
}

// ListUserAds returns all of a user's own ads regardless of status.
func (uc *AdUsecase) ListUserAds(ctx context.Context, userID string) ([]*entity.Ad, error) {
	ads, err := uc.adRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list user ads from repository", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.ListUserAds: %w", err)
	}
	return ads, nil
}

// CreateAdInput holds every field a new ad can carry.
type CreateAdInput struct {
	UserID          string
	CategoryID      string
	Title           string
	Description     string
	Price           float64
	Seller          string
	Location        string
	CEP             string
	Bedrooms        *int
	Bathrooms       *int
	Rules           []string
	Amenities       []string
	CustomRules     string
	CustomAmenities string
	Images          []string
	Status          entity.AdStatus
}

// CreateAd validates the ad, checks the category exists and enforces the
// seller/location rule for ads born published.
func (uc *AdUsecase) CreateAd(ctx context.Context, input CreateAdInput) (*entity.Ad, error) {
	exists, err := uc.categoryRepo.Exists(ctx, input.CategoryID)
	if err != nil {
		uc.logger.Error("Failed to check category existence", zap.String("category_id", input.CategoryID), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.CreateAd: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: category %s", entity.ErrNotFound, input.CategoryID)
	}

	ad, err := entity.NewAd(input.UserID, input.CategoryID, input.Title, input.Description, input.Price, input.Status)
	if err != nil {
		return nil, err
	}
	ad.Seller = input.Seller
	ad.Location = input.Location
	ad.CEP = input.CEP
	ad.Bedrooms = input.Bedrooms
	ad.Bathrooms = input.Bathrooms
	if input.Rules != nil {
		ad.Rules = input.Rules
	}
	if input.Amenities != nil {
		ad.Amenities = input.Amenities
	}
	ad.CustomRules = input.CustomRules
	ad.CustomAmenities = input.CustomAmenities
	if input.Images != nil {
		ad.Images = input.Images
	}

	if ad.Status == entity.StatusPublished {
		if err := ad.RequirePublishable(); err != nil {
			return nil, err
		}
	}

	createdID, err := uc.adRepo.Create(ctx, ad)
	if err != nil {
		uc.logger.Error("Failed to create ad in repository", zap.String("user_id", input.UserID), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.CreateAd: %w", err)
	}
	ad.ID = createdID

	uc.cacheAd(ctx, ad)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishAdCreated(ctx, ad); errPub != nil {
			uc.logger.Warn("Failed to publish ad created event", zap.String("ad_id", ad.ID), zap.Error(errPub))
		}
	}

	return ad, nil
}

// UpdateAdInput is the explicit partial-update structure: only the listed
// mutable fields can change, and nil means "leave untouched". Status is not
// here; it only moves through ChangeAdStatus.
type UpdateAdInput struct {
	Title           *string
	Description     *string
	Price           *float64
	CategoryID      *string
	Seller          *string
	Location        *string
	CEP             *string
	Bedrooms        *int
	Bathrooms       *int
	Rules           *[]string
	Amenities       *[]string
	CustomRules     *string
	CustomAmenities *string
	Images          *[]string
}

// UpdateAd applies a partial update after the ownership check. Fields absent
// from the input stay as they are.
func (uc *AdUsecase) UpdateAd(ctx context.Context, adID string, input UpdateAdInput, actorID string) (*entity.Ad, error) {
	ad, err := uc.getForMutation(ctx, adID)
	if err != nil {
		return nil, err
	}
	if err := entity.RequireOwner(ad, actorID); err != nil {
		uc.logger.Warn("Forbidden ad update attempt",
			zap.String("ad_id", adID), zap.String("owner_id", ad.UserID), zap.String("actor_id", actorID))
		return nil, err
	}

	if input.CategoryID != nil {
		exists, err := uc.categoryRepo.Exists(ctx, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("AdUsecase.UpdateAd: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: category %s", entity.ErrNotFound, *input.CategoryID)
		}
		ad.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		ad.Title = *input.Title
	}
	if input.Description != nil {
		ad.Description = *input.Description
	}
	if input.Price != nil {
		ad.Price = *input.Price
	}
	if input.Seller != nil {
		ad.Seller = *input.Seller
	}
	if input.Location != nil {
		ad.Location = *input.Location
	}
	if input.CEP != nil {
		ad.CEP = *input.CEP
	}
	if input.Bedrooms != nil {
		ad.Bedrooms = input.Bedrooms
	}
	if input.Bathrooms != nil {
		ad.Bathrooms = input.Bathrooms
	}
	if input.Rules != nil {
		ad.Rules = *input.Rules
	}
	if input.Amenities != nil {
		ad.Amenities = *input.Amenities
	}
	if input.CustomRules != nil {
		ad.CustomRules = *input.CustomRules
	}
	if input.CustomAmenities != nil {
		ad.CustomAmenities = *input.CustomAmenities
	}
	if input.Images != nil {
		ad.Images = *input.Images
	}

	if err := ad.Validate(); err != nil {
		return nil, err
	}
	if ad.Status == entity.StatusPublished {
		if err := ad.RequirePublishable(); err != nil {
			return nil, err
		}
	}

	ad.UpdatedAt = time.Now().UTC()

	if err := uc.adRepo.Update(ctx, ad); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to update ad in repository", zap.String("ad_id", adID), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.UpdateAd: %w", err)
	}

	uc.invalidateAd(ctx, adID)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishAdUpdated(ctx, ad); errPub != nil {
			uc.logger.Warn("Failed to publish ad updated event", zap.String("ad_id", ad.ID), zap.Error(errPub))
		}
	}

	return ad, nil
}

// DeleteAd removes the ad after the ownership check. Cascading removal of
// comments and favorite links happens inside the repository transaction.
func (uc *AdUsecase) DeleteAd(ctx context.Context, adID, actorID string) error {
	ad, err := uc.getForMutation(ctx, adID)
	if err != nil {
		return err
	}
	if err := entity.RequireOwner(ad, actorID); err != nil {
		uc.logger.Warn("Forbidden ad delete attempt",
			zap.String("ad_id", adID), zap.String("owner_id", ad.UserID), zap.String("actor_id", actorID))
		return err
	}

	if err := uc.adRepo.Delete(ctx, adID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrNotFound
		}
		uc.logger.Error("Failed to delete ad from repository", zap.String("ad_id", adID), zap.Error(err))
		return fmt.Errorf("AdUsecase.DeleteAd: %w", err)
	}

	uc.invalidateAd(ctx, adID)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishAdDeleted(ctx, adID); errPub != nil {
			uc.logger.Warn("Failed to publish ad deleted event", zap.String("ad_id", adID), zap.Error(errPub))
		}
	}

	return nil
}

// ChangeAdStatus moves the ad through the lifecycle table after the
// ownership check. Republication re-stamps PublishedAt and re-validates
// seller and location.
func (uc *AdUsecase) ChangeAdStatus(ctx context.Context, adID string, newStatus entity.AdStatus, actorID string) (*entity.Ad, error) {
	ad, err := uc.getForMutation(ctx, adID)
	if err != nil {
		return nil, err
	}
	if err := entity.RequireOwner(ad, actorID); err != nil {
		uc.logger.Warn("Forbidden ad status change attempt",
			zap.String("ad_id", adID), zap.String("owner_id", ad.UserID), zap.String("actor_id", actorID))
		return nil, err
	}

	fromStatus := ad.Status
	if err := ad.ChangeStatus(newStatus); err != nil {
		return nil, err
	}

	if err := uc.adRepo.Update(ctx, ad); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to persist ad status change", zap.String("ad_id", adID), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase.ChangeAdStatus: %w", err)
	}

	uc.invalidateAd(ctx, adID)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishAdStatusChanged(ctx, adID, fromStatus, newStatus); errPub != nil {
			uc.logger.Warn("Failed to publish ad status changed event", zap.String("ad_id", adID), zap.Error(errPub))
		}
	}

	return ad, nil
}

func (uc *AdUsecase) getForMutation(ctx context.Context, adID string) (*entity.Ad, error) {
	ad, err := uc.adRepo.GetByID(ctx, adID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to get ad for mutation", zap.String("ad_id", adID), zap.Error(err))
		return nil, fmt.Errorf("AdUsecase: failed to get ad: %w", err)
	}
	return ad, nil
}

func (uc *AdUsecase) cacheAd(ctx context.Context, ad *entity.Ad) {
	if uc.cacheRepo == nil || ad == nil {
		return
	}
	adBytes, err := json.Marshal(ad)
	if err != nil {
		uc.logger.Warn("Failed to marshal ad for caching", zap.String("ad_id", ad.ID), zap.Error(err))
		return
	}
	key := adCacheKey(ad.ID)
	if err := uc.cacheRepo.Set(ctx, key, adBytes, adCacheTTL); err != nil {
		uc.logger.Warn("Failed to set ad in cache", zap.String("key", key), zap.Error(err))
	}
}

func (uc *AdUsecase) invalidateAd(ctx context.Context, adID string) {
	if uc.cacheRepo == nil {
		return
	}
	key := adCacheKey(adID)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to delete ad from cache", zap.String("key", key), zap.Error(err))
	}
}
