package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

type OrderRepository interface {
	// CreateIfAbsent writes the order and its items atomically. It reports
	// false without writing anything when an order with the same id exists.
	CreateIfAbsent(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error)
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Order, int64, error)

	HasPurchasedProduct(ctx context.Context, userID, productID string) (bool, error)
	HasPurchasedFromShop(ctx context.Context, userID, shopID string) (bool, error)
}

type CheckoutRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Checkout, error)
	// Begin creates the checkout record, or returns the stored one when it already exists.
	Begin(ctx context.Context, checkout *entity.Checkout) (*entity.Checkout, error)
	Update(ctx context.Context, checkout *entity.Checkout) error
}
