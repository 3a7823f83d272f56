package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

func newAdUsecaseForTest(adRepo *MockAdRepository, categoryRepo *MockCategoryRepository) *AdUsecase {
	return NewAdUsecase(adRepo, categoryRepo, nil, nil, logger.NewLogger(), 20, 100)
}

func storedAd(id, userID string, status entity.AdStatus) *entity.Ad {
	ad, _ := entity.NewAd(userID, "cat-1", "Room near campus", "Sunny room", 450.0, entity.StatusDraft)
	ad.ID = id
	ad.Seller = "Maria"
	ad.Location = "Natal"
	ad.Status = status
	return ad
}

func TestAdUsecase_GetAd_NotFound(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	_, err := uc.GetAd(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAdUsecase_ListAds_DefaultsToPublished(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.AdFilter) bool {
		return f.Status == entity.StatusPublished && f.Limit == 20 && f.Offset == 0
	})).Return([]*entity.Ad{storedAd("ad-1", "user-1", entity.StatusPublished)}, int64(1), nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	out, err := uc.ListAds(context.Background(), ListAdsInput{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.TotalCount)
	assert.Len(t, out.Ads, 1)
	adRepo.AssertExpectations(t)
}

func TestAdUsecase_ListAds_CapsLimit(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.AdFilter) bool {
		return f.Limit == 100
	})).Return([]*entity.Ad{}, int64(0), nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	_, err := uc.ListAds(context.Background(), ListAdsInput{Limit: 5000})
	assert.NoError(t, err)
	adRepo.AssertExpectations(t)
}

func TestAdUsecase_CreateAd_UnknownCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("Exists", mock.Anything, "ghost").Return(false, nil)

	uc := newAdUsecaseForTest(new(MockAdRepository), categoryRepo)
	_, err := uc.CreateAd(context.Background(), CreateAdInput{
		UserID:     "user-1",
		CategoryID: "ghost",
		Title:      "Room",
		Price:      100,
		Status:     entity.StatusDraft,
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAdUsecase_CreateAd_PublishedNeedsSellerAndLocation(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("Exists", mock.Anything, "cat-1").Return(true, nil)

	uc := newAdUsecaseForTest(new(MockAdRepository), categoryRepo)
	_, err := uc.CreateAd(context.Background(), CreateAdInput{
		UserID:     "user-1",
		CategoryID: "cat-1",
		Title:      "Room",
		Price:      100,
		Status:     entity.StatusPublished,
	})
	assert.ErrorIs(t, err, entity.ErrMissingRequiredField)
}

func TestAdUsecase_CreateAd_DraftWithoutSellerIsFine(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("Exists", mock.Anything, "cat-1").Return(true, nil)
	adRepo := new(MockAdRepository)
	adRepo.On("Create", mock.Anything, mock.Anything).Return("ad-1", nil)

	uc := newAdUsecaseForTest(adRepo, categoryRepo)
	ad, err := uc.CreateAd(context.Background(), CreateAdInput{
		UserID:     "user-1",
		CategoryID: "cat-1",
		Title:      "Room",
		Price:      100,
		Status:     entity.StatusDraft,
	})
	assert.NoError(t, err)
	assert.Equal(t, "ad-1", ad.ID)
	assert.Nil(t, ad.PublishedAt)
}

func TestAdUsecase_CreateAd_PublishesEvent(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("Exists", mock.Anything, "cat-1").Return(true, nil)
	adRepo := new(MockAdRepository)
	adRepo.On("Create", mock.Anything, mock.Anything).Return("ad-1", nil)
	publisher := new(MockAdEventPublisher)
	publisher.On("PublishAdCreated", mock.Anything, mock.Anything).Return(nil)

	uc := NewAdUsecase(adRepo, categoryRepo, nil, publisher, logger.NewLogger(), 20, 100)
	_, err := uc.CreateAd(context.Background(), CreateAdInput{
		UserID:     "user-1",
		CategoryID: "cat-1",
		Title:      "Room",
		Price:      100,
		Seller:     "Maria",
		Location:   "Natal",
		Status:     entity.StatusPublished,
	})
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestAdUsecase_UpdateAd_ForbiddenForNonOwner(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(storedAd("ad-1", "user-1", entity.StatusDraft), nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	newTitle := "Hacked"
	_, err := uc.UpdateAd(context.Background(), "ad-1", UpdateAdInput{Title: &newTitle}, "intruder")
	assert.ErrorIs(t, err, entity.ErrForbidden)
	adRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdUsecase_UpdateAd_PartialLeavesOtherFields(t *testing.T) {
	existing := storedAd("ad-1", "user-1", entity.StatusDraft)
	existing.Description = "Sunny room"

	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(existing, nil)
	adRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	newPrice := 500.0
	ad, err := uc.UpdateAd(context.Background(), "ad-1", UpdateAdInput{Price: &newPrice}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, ad.Price)
	assert.Equal(t, "Room near campus", ad.Title)
	assert.Equal(t, "Sunny room", ad.Description)
}

func TestAdUsecase_UpdateAd_CannotBlankSellerOnPublishedAd(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(storedAd("ad-1", "user-1", entity.StatusPublished), nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	empty := ""
	_, err := uc.UpdateAd(context.Background(), "ad-1", UpdateAdInput{Seller: &empty}, "user-1")
	assert.ErrorIs(t, err, entity.ErrMissingRequiredField)
	adRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdUsecase_DeleteAd(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(storedAd("ad-1", "user-1", entity.StatusDraft), nil)
	adRepo.On("Delete", mock.Anything, "ad-1").Return(nil)
	publisher := new(MockAdEventPublisher)
	publisher.On("PublishAdDeleted", mock.Anything, "ad-1").Return(nil)

	uc := NewAdUsecase(adRepo, new(MockCategoryRepository), nil, publisher, logger.NewLogger(), 20, 100)
	assert.NoError(t, uc.DeleteAd(context.Background(), "ad-1", "user-1"))
	adRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAdUsecase_DeleteAd_ForbiddenForNonOwner(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(storedAd("ad-1", "user-1", entity.StatusDraft), nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	assert.ErrorIs(t, uc.DeleteAd(context.Background(), "ad-1", "intruder"), entity.ErrForbidden)
	adRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdUsecase_ChangeAdStatus(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(storedAd("ad-1", "user-1", entity.StatusPublished), nil)
	adRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	publisher := new(MockAdEventPublisher)
	publisher.On("PublishAdStatusChanged", mock.Anything, "ad-1", entity.StatusPublished, entity.StatusReserved).Return(nil)

	uc := NewAdUsecase(adRepo, new(MockCategoryRepository), nil, publisher, logger.NewLogger(), 20, 100)
	ad, err := uc.ChangeAdStatus(context.Background(), "ad-1", entity.StatusReserved, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusReserved, ad.Status)
	publisher.AssertExpectations(t)
}

func TestAdUsecase_ChangeAdStatus_InvalidTransition(t *testing.T) {
	adRepo := new(MockAdRepository)
	adRepo.On("GetByID", mock.Anything, "ad-1").Return(storedAd("ad-1", "user-1", entity.StatusDraft), nil)

	uc := newAdUsecaseForTest(adRepo, new(MockCategoryRepository))
	_, err := uc.ChangeAdStatus(context.Background(), "ad-1", entity.StatusCompleted, "user-1")
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	adRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
