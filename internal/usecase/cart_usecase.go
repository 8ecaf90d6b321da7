package usecase

import (
	"context"
	"time"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
}

func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, shopRepo repository.ShopRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
	}
}

// purchasable loads a product and checks it can be bought right now.
func (uc *CartUseCase) purchasable(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	shop, err := uc.shopRepo.GetByID(ctx, product.ShopID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	if err := rules.CheckPurchasable(product, shop); err != nil {
		return nil, err
	}
	return product, nil
}

// AddToCart increments the user's row for the product, creating it on first add.
func (uc *CartUseCase) AddToCart(ctx context.Context, userID, productID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, errors.InvalidArgument("quantity must be at least 1", nil)
	}
	product, err := uc.purchasable(ctx, productID)
	if err != nil {
		return nil, err
	}

	id := entity.CartItemID(userID, productID)
	return uc.cartRepo.Upsert(ctx, id, func(current *entity.CartItem) (*entity.CartItem, error) {
		if current == nil {
			current = &entity.CartItem{
				UserID:    userID,
				ProductID: productID,
				CreatedAt: time.Now(),
			}
		}
		next, err := rules.NextCartQuantity(product, current.Quantity, quantity)
		if err != nil {
			return nil, err
		}
		item := *current
		item.Quantity = next
		return &item, nil
	})
}

// ownedItem loads a cart row and checks it belongs to the caller.
func (uc *CartUseCase) ownedItem(ctx context.Context, userID, itemID string) (*entity.CartItem, error) {
	item, err := uc.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, errors.Forbidden("cart item belongs to another user", nil)
	}
	return item, nil
}

func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, errors.InvalidArgument("quantity must be at least 1", nil)
	}
	item, err := uc.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidateQuantity(product, quantity); err != nil {
		return nil, err
	}

	return uc.cartRepo.Upsert(ctx, itemID, func(current *entity.CartItem) (*entity.CartItem, error) {
		if current == nil {
			return nil, errors.NotFound("Cart item", nil)
		}
		next := *current
		next.Quantity = quantity
		return &next, nil
	})
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID string) error {
	if _, err := uc.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, itemID)
}

func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*entity.CartView, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.joinProducts(ctx, items)
	if err != nil {
		return nil, err
	}
	return rules.BuildCartView(lines), nil
}

// joinProducts pairs cart rows with their products. Rows whose product is gone
// are left out of the view.
func (uc *CartUseCase) joinProducts(ctx context.Context, items []*entity.CartItem) ([]entity.CartLine, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.CartLine, 0, len(items))
	for _, it := range items {
		product, ok := products[it.ProductID]
		if !ok {
			logger.Warn("cart item %s references missing product %s", it.ID, it.ProductID)
			continue
		}
		lines = append(lines, entity.CartLine{Item: it, Product: product})
	}
	return lines, nil
}
