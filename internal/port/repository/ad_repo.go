package repository

import (
	"context"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
)

// AdFilter narrows an ad listing. Pointer fields distinguish "not filtered"
// from zero values. Location is a case-insensitive substring match.
type AdFilter struct {
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	Location   string
	Bedrooms   *int
	Status     entity.AdStatus
	Offset     int
	Limit      int
}

type AdRepository interface {
	Create(ctx context.Context, ad *entity.Ad) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Ad, error)
	// List returns ads matching the filter ordered newest-created first,
	// plus the total count before pagination.
	List(ctx context.Context, filter AdFilter) ([]*entity.Ad, int64, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Ad, error)
	Update(ctx context.Context, ad *entity.Ad) error
	// Delete removes the ad and cascades to its comments and favorite links
	// inside one transaction.
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
