package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

// ProductFilter narrows product listings; zero fields are ignored.
type ProductFilter struct {
	ShopID   string
	Category string
	Status   entity.ProductStatus
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
