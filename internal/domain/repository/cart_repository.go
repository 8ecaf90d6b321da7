package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

type CartRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	// Upsert reads the row with the given id (nil when absent) and stores what fn returns,
	// all inside one transaction.
	Upsert(ctx context.Context, id string, fn func(current *entity.CartItem) (*entity.CartItem, error)) (*entity.CartItem, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}
