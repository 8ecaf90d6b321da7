package usecase

import (
	"context"
	"time"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/internal/domain/service"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

const (
	checkoutSaga = "checkout"

	CheckoutOutcomeCompleted = "completed"
	CheckoutOutcomeRejected  = "rejected"
	CheckoutOutcomeFailed    = "failed"
)

type CheckoutUseCase struct {
	cart         *CartUseCase
	cartRepo     repository.CartRepository
	shopRepo     repository.ShopRepository
	orderRepo    repository.OrderRepository
	checkoutRepo repository.CheckoutRepository
	locker       service.Locker
	lockTTL      time.Duration
	recorder     Recorder
}

func NewCheckoutUseCase(
	cart *CartUseCase,
	cartRepo repository.CartRepository,
	shopRepo repository.ShopRepository,
	orderRepo repository.OrderRepository,
	checkoutRepo repository.CheckoutRepository,
	locker service.Locker,
	lockTTL time.Duration,
	recorder Recorder,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cart:         cart,
		cartRepo:     cartRepo,
		shopRepo:     shopRepo,
		orderRepo:    orderRepo,
		checkoutRepo: checkoutRepo,
		locker:       locker,
		lockTTL:      lockTTL,
		recorder:     recorderOrNop(recorder),
	}
}

// Checkout turns the user's cart into one completed order per shop.
//
// The writes run as a saga: begin checkout record, create orders, clear cart,
// complete record. Ids are derived from the cart contents, so running Checkout
// again after a failed step finishes the same checkout instead of starting a
// second one.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string) (*entity.CheckoutResult, error) {
	release, err := uc.locker.Acquire(ctx, "checkout:"+userID, uc.lockTTL)
	if err != nil {
		uc.recorder.CheckoutFinished(CheckoutOutcomeRejected)
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to release checkout lock for user %s: %v", userID, err)
		}
	}()

	result, err := uc.run(ctx, userID)
	switch {
	case err == nil:
		uc.recorder.CheckoutFinished(CheckoutOutcomeCompleted)
	case errors.Is(err, errors.CodeEmptyCart), errors.Is(err, errors.CodeOutOfStock), errors.Is(err, errors.CodeInvalidState):
		uc.recorder.CheckoutFinished(CheckoutOutcomeRejected)
	default:
		uc.recorder.CheckoutFinished(CheckoutOutcomeFailed)
	}
	return result, err
}

func (uc *CheckoutUseCase) run(ctx context.Context, userID string) (*entity.CheckoutResult, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.EmptyCart()
	}

	lines, err := uc.cart.joinProducts(ctx, items)
	if err != nil {
		return nil, err
	}
	if len(lines) != len(items) {
		return nil, errors.InvalidState("cart contains products that are no longer available")
	}
	if err := uc.validate(ctx, lines); err != nil {
		return nil, err
	}

	key := rules.CheckoutKey(userID, items)
	groups := rules.GroupByShop(lines)
	log := logger.With(map[string]interface{}{
		"saga":        checkoutSaga,
		"checkout_id": key,
		"user_id":     userID,
	})
	log.Debug().Int("items", len(items)).Int("shops", len(groups)).Msg("checkout started")

	orderIDs := make([]string, len(groups))
	for i, g := range groups {
		orderIDs[i] = rules.OrderID(key, g.ShopID)
	}

	checkout, err := uc.checkoutRepo.Begin(ctx, &entity.Checkout{
		ID:       key,
		UserID:   userID,
		OrderIDs: orderIDs,
		Status:   entity.CheckoutStarted,
	})
	if err != nil {
		return nil, stepError(checkoutSaga, "begin", key, err)
	}

	result := &entity.CheckoutResult{CheckoutID: key}
	now := time.Now()
	for _, g := range groups {
		order := &entity.Order{
			ID:          rules.OrderID(key, g.ShopID),
			CheckoutID:  key,
			UserID:      userID,
			ShopID:      g.ShopID,
			TotalAmount: g.Total,
			Status:      entity.OrderCompleted,
			CreatedAt:   now,
		}
		orderItems := make([]*entity.OrderItem, 0, len(g.Lines))
		for _, l := range g.Lines {
			orderItems = append(orderItems, &entity.OrderItem{
				ID:          rules.OrderItemID(order.ID, l.Item.ID),
				OrderID:     order.ID,
				UserID:      userID,
				ProductID:   l.Product.ID,
				ProductName: l.Product.Name,
				Quantity:    l.Item.Quantity,
				Price:       l.Product.Price,
				CreatedAt:   now,
			})
		}

		if _, err := uc.orderRepo.CreateIfAbsent(ctx, order, orderItems); err != nil {
			return nil, stepError(checkoutSaga, "create_orders", key, err)
		}
		result.Orders = append(result.Orders, &entity.OrderWithItems{Order: order, Items: orderItems})
		result.TotalAmount += order.TotalAmount
	}

	itemIDs := make([]string, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}
	if err := uc.cartRepo.DeleteMany(ctx, itemIDs); err != nil {
		return nil, stepError(checkoutSaga, "clear_cart", key, err)
	}

	completedAt := time.Now()
	checkout.Status = entity.CheckoutCompleted
	checkout.CompletedAt = &completedAt
	if err := uc.checkoutRepo.Update(ctx, checkout); err != nil {
		return nil, stepError(checkoutSaga, "complete", key, err)
	}

	log.Info().Int("orders", len(result.Orders)).Float64("total", result.TotalAmount).Msg("checkout completed")
	return result, nil
}

// validate re-checks every line against current stock and shop state.
func (uc *CheckoutUseCase) validate(ctx context.Context, lines []entity.CartLine) error {
	shops := make(map[string]*entity.Shop)
	for _, l := range lines {
		shop, ok := shops[l.Product.ShopID]
		if !ok {
			var err error
			shop, err = uc.shopRepo.GetByID(ctx, l.Product.ShopID)
			if err != nil && !errors.Is(err, errors.CodeNotFound) {
				return err
			}
			shops[l.Product.ShopID] = shop
		}
		if err := rules.CheckPurchasable(l.Product, shop); err != nil {
			return err
		}
		if err := rules.ValidateQuantity(l.Product, l.Item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CheckoutUseCase) ListOrders(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByUser(ctx, userID, limit, offset)
}

// GetOrder is visible to the buyer and to the owner of the selling shop.
func (uc *CheckoutUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.OrderWithItems, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		shop, err := uc.shopRepo.GetByID(ctx, order.ShopID)
		if err != nil && !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		if shop == nil || shop.OwnerUserID != userID {
			return nil, errors.Forbidden("you do not have access to this order", nil)
		}
	}

	items, err := uc.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &entity.OrderWithItems{Order: order, Items: items}, nil
}
