package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
)

type firestoreOrderRepository struct {
	store *Store
}

func NewFirestoreOrderRepository(store *Store) repository.OrderRepository {
	return &firestoreOrderRepository{store: store}
}

func (r *firestoreOrderRepository) CreateIfAbsent(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (bool, error) {
	orderRef := r.store.col(collectionOrders).Doc(order.ID)

	return call(ctx, r.store, "Order", "create order", func(ctx context.Context) (bool, error) {
		created := false
		err := r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			created = false
			_, err := tx.Get(orderRef)
			if err == nil {
				return nil
			}
			if status.Code(err) != codes.NotFound {
				return err
			}

			if err := tx.Create(orderRef, order); err != nil {
				return err
			}
			for _, item := range items {
				if err := tx.Create(r.store.col(collectionOrderItems).Doc(item.ID), item); err != nil {
					return err
				}
			}
			created = true
			return nil
		})
		return created, err
	})
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return call(ctx, r.store, "Order", "get order", func(ctx context.Context) (*entity.Order, error) {
		return getDoc[entity.Order](ctx, r.store.col(collectionOrders).Doc(id))
	})
}

func (r *firestoreOrderRepository) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	q := r.store.col(collectionOrderItems).Where("orderId", "==", orderID)
	return listAll[entity.OrderItem](ctx, r.store, "Order item", "list order items", q)
}

func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	q := r.store.col(collectionOrders).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return listPage[entity.Order](ctx, r.store, "Order", "list orders", q, limit, offset)
}

func (r *firestoreOrderRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Order, int64, error) {
	q := r.store.col(collectionOrders).
		Where("shopId", "==", shopID).
		OrderBy("createdAt", firestore.Desc)

	return listPage[entity.Order](ctx, r.store, "Order", "list shop orders", q, limit, offset)
}

func (r *firestoreOrderRepository) HasPurchasedProduct(ctx context.Context, userID, productID string) (bool, error) {
	q := r.store.col(collectionOrderItems).
		Where("userId", "==", userID).
		Where("productId", "==", productID)

	items, err := listAll[entity.OrderItem](ctx, r.store, "Order item", "list purchases", q)
	if err != nil {
		return false, err
	}

	for _, item := range items {
		order, err := r.GetByID(ctx, item.OrderID)
		if err != nil {
			return false, err
		}
		if order.Status.Purchased() {
			return true, nil
		}
	}
	return false, nil
}

func (r *firestoreOrderRepository) HasPurchasedFromShop(ctx context.Context, userID, shopID string) (bool, error) {
	q := r.store.col(collectionOrders).
		Where("userId", "==", userID).
		Where("shopId", "==", shopID).
		Where("status", "in", []string{string(entity.OrderPaid), string(entity.OrderCompleted)}).
		Limit(1)

	orders, err := listAll[entity.Order](ctx, r.store, "Order", "list purchases", q)
	if err != nil {
		return false, err
	}
	return len(orders) > 0, nil
}

type firestoreCheckoutRepository struct {
	store *Store
}

func NewFirestoreCheckoutRepository(store *Store) repository.CheckoutRepository {
	return &firestoreCheckoutRepository{store: store}
}

func (r *firestoreCheckoutRepository) GetByID(ctx context.Context, id string) (*entity.Checkout, error) {
	return call(ctx, r.store, "Checkout", "get checkout", func(ctx context.Context) (*entity.Checkout, error) {
		return getDoc[entity.Checkout](ctx, r.store.col(collectionCheckouts).Doc(id))
	})
}

func (r *firestoreCheckoutRepository) Begin(ctx context.Context, checkout *entity.Checkout) (*entity.Checkout, error) {
	ref := r.store.col(collectionCheckouts).Doc(checkout.ID)
	if checkout.CreatedAt.IsZero() {
		checkout.CreatedAt = time.Now()
	}

	return call(ctx, r.store, "Checkout", "begin checkout", func(ctx context.Context) (*entity.Checkout, error) {
		return mutate(ctx, r.store, ref, func() *entity.Checkout {
			fresh := *checkout
			return &fresh
		}, func(*entity.Checkout) error { return nil })
	})
}

func (r *firestoreCheckoutRepository) Update(ctx context.Context, checkout *entity.Checkout) error {
	return exec(ctx, r.store, "Checkout", "update checkout", func(ctx context.Context) error {
		_, err := r.store.col(collectionCheckouts).Doc(checkout.ID).Set(ctx, checkout)
		return err
	})
}
