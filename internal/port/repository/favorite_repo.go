package repository

import "context"

// FavoriteRepository owns the user<->ad favorite links. The pair is unique;
// Add on an existing pair returns ErrDuplicateKey.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, adID string) error
	Remove(ctx context.Context, userID, adID string) error
	Exists(ctx context.Context, userID, adID string) (bool, error)
	// ListAdIDsByUser returns the ids of the user's favorited ads, newest
	// favorite first.
	ListAdIDsByUser(ctx context.Context, userID string) ([]string, error)
}
