package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

type ShopRepository interface {
	// CreateForOwner stores a new shop unless the owner already has one that
	// was not rejected, in which case it returns a Conflict error.
	CreateForOwner(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	// GetByOwner returns the owner's current (not rejected) shop.
	GetByOwner(ctx context.Context, ownerID string) (*entity.Shop, error)
	ListByStatus(ctx context.Context, statuses []entity.ShopStatus, limit, offset int) ([]*entity.Shop, int64, error)
	Mutate(ctx context.Context, id string, fn func(shop *entity.Shop) error) (*entity.Shop, error)

	CreateReview(ctx context.Context, review *entity.ShopReview) error
}
