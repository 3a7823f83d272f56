package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func publishableAd(t *testing.T, status AdStatus) *Ad {
	t.Helper()
	ad, err := NewAd("user-1", "cat-1", "Room near campus", "Sunny room", 450.0, StatusDraft)
	assert.NoError(t, err)
	ad.Seller = "Maria"
	ad.Location = "Natal"
	ad.Status = status
	return ad
}

func TestNewAd_DefaultsToPublished(t *testing.T) {
	ad, err := NewAd("user-1", "cat-1", "Room", "desc", 100.0, "")
	assert.NoError(t, err)
	assert.Equal(t, StatusPublished, ad.Status)
	assert.NotNil(t, ad.PublishedAt)
	assert.NotNil(t, ad.Rules)
	assert.NotNil(t, ad.Amenities)
	assert.NotNil(t, ad.Images)
}

func TestNewAd_DraftHasNoPublishedAt(t *testing.T) {
	ad, err := NewAd("user-1", "cat-1", "Room", "desc", 100.0, StatusDraft)
	assert.NoError(t, err)
	assert.Equal(t, StatusDraft, ad.Status)
	assert.Nil(t, ad.PublishedAt)
}

func TestAd_Validate(t *testing.T) {
	negative := -1

	testCases := []struct {
		name   string
		mutate func(*Ad)
		field  string
	}{
		{"empty title", func(a *Ad) { a.Title = "  " }, "title"},
		{"negative price", func(a *Ad) { a.Price = -10 }, "price"},
		{"missing user", func(a *Ad) { a.UserID = "" }, "user_id"},
		{"missing category", func(a *Ad) { a.CategoryID = "" }, "category_id"},
		{"negative bedrooms", func(a *Ad) { a.Bedrooms = &negative }, "bedrooms"},
		{"negative bathrooms", func(a *Ad) { a.Bathrooms = &negative }, "bathrooms"},
		{"unknown status", func(a *Ad) { a.Status = "archived" }, "status"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ad := publishableAd(t, StatusDraft)
			tc.mutate(ad)
			err := ad.Validate()
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestAdStatus_TransitionTable(t *testing.T) {
	all := []AdStatus{StatusDraft, StatusPublished, StatusReserved, StatusCompleted, StatusCancelled}
	allowed := map[AdStatus]map[AdStatus]bool{
		StatusDraft:     {StatusPublished: true, StatusCancelled: true},
		StatusPublished: {StatusReserved: true, StatusCancelled: true},
		StatusReserved:  {StatusCompleted: true, StatusPublished: true},
		StatusCompleted: {},
		StatusCancelled: {StatusDraft: true, StatusPublished: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestAd_ChangeStatus_RejectsInvalidTransition(t *testing.T) {
	ad := publishableAd(t, StatusDraft)

	err := ad.ChangeStatus(StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusDraft, ad.Status)
}

func TestAd_ChangeStatus_RejectsUnknownStatus(t *testing.T) {
	ad := publishableAd(t, StatusDraft)
	assert.ErrorIs(t, ad.ChangeStatus("archived"), ErrInvalidTransition)
}

func TestAd_ChangeStatus_CompletedIsTerminal(t *testing.T) {
	ad := publishableAd(t, StatusCompleted)

	for _, to := range []AdStatus{StatusDraft, StatusPublished, StatusReserved, StatusCancelled} {
		assert.ErrorIs(t, ad.ChangeStatus(to), ErrInvalidTransition)
	}
}

func TestAd_ChangeStatus_PublishRequiresSellerAndLocation(t *testing.T) {
	ad, err := NewAd("user-1", "cat-1", "Room", "desc", 100.0, StatusDraft)
	assert.NoError(t, err)

	err = ad.ChangeStatus(StatusPublished)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	assert.Equal(t, StatusDraft, ad.Status)

	ad.Seller = "Maria"
	err = ad.ChangeStatus(StatusPublished)
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	ad.Location = "Natal"
	assert.NoError(t, ad.ChangeStatus(StatusPublished))
	assert.Equal(t, StatusPublished, ad.Status)
}

func TestAd_ChangeStatus_RepublishRestampsPublishedAt(t *testing.T) {
	ad := publishableAd(t, StatusPublished)
	old := time.Now().UTC().Add(-time.Hour)
	ad.PublishedAt = &old

	assert.NoError(t, ad.ChangeStatus(StatusReserved))
	assert.Equal(t, old, *ad.PublishedAt, "leaving published must not touch PublishedAt")

	assert.NoError(t, ad.ChangeStatus(StatusPublished))
	assert.True(t, ad.PublishedAt.After(old), "republishing must re-stamp PublishedAt")
}

func TestAd_ChangeStatus_FullLifecycle(t *testing.T) {
	ad := publishableAd(t, StatusDraft)

	for _, to := range []AdStatus{StatusPublished, StatusReserved, StatusCompleted} {
		assert.NoError(t, ad.ChangeStatus(to))
		assert.Equal(t, to, ad.Status)
	}
}

func TestRequireOwner(t *testing.T) {
	ad := publishableAd(t, StatusDraft)

	assert.NoError(t, RequireOwner(ad, "user-1"))

	err := RequireOwner(ad, "user-2")
	assert.True(t, errors.Is(err, ErrForbidden))
}
