package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/pkg/errors"
)

type firestoreShopRepository struct {
	store *Store
}

func NewFirestoreShopRepository(store *Store) repository.ShopRepository {
	return &firestoreShopRepository{store: store}
}

func (r *firestoreShopRepository) CreateForOwner(ctx context.Context, shop *entity.Shop) error {
	col := r.store.col(collectionShops)
	if shop.ID == "" {
		shop.ID = col.NewDoc().ID
	}
	now := time.Now()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	return exec(ctx, r.store, "Shop", "create shop", func(ctx context.Context) error {
		return r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			existing, err := tx.Documents(col.Where("ownerUserId", "==", shop.OwnerUserID)).GetAll()
			if err != nil {
				return err
			}
			for _, doc := range existing {
				s, err := decode[entity.Shop](doc)
				if err != nil {
					return err
				}
				if s.Status != entity.ShopRejected {
					return errors.Conflict("user already has a shop")
				}
			}
			return tx.Create(col.Doc(shop.ID), shop)
		})
	})
}

func (r *firestoreShopRepository) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	return call(ctx, r.store, "Shop", "get shop", func(ctx context.Context) (*entity.Shop, error) {
		return getDoc[entity.Shop](ctx, r.store.col(collectionShops).Doc(id))
	})
}

func (r *firestoreShopRepository) GetByOwner(ctx context.Context, ownerID string) (*entity.Shop, error) {
	q := r.store.col(collectionShops).
		Where("ownerUserId", "==", ownerID).
		Where("status", "in", shopStatusValues(entity.ShopPending, entity.ShopApproved, entity.ShopActive, entity.ShopInactive)).
		Limit(1)

	shops, err := listAll[entity.Shop](ctx, r.store, "Shop", "get shop by owner", q)
	if err != nil {
		return nil, err
	}
	if len(shops) == 0 {
		return nil, errors.NotFound("Shop", nil)
	}
	return shops[0], nil
}

func (r *firestoreShopRepository) ListByStatus(ctx context.Context, statuses []entity.ShopStatus, limit, offset int) ([]*entity.Shop, int64, error) {
	q := r.store.col(collectionShops).
		Where("status", "in", shopStatusValues(statuses...)).
		OrderBy("createdAt", firestore.Asc)

	return listPage[entity.Shop](ctx, r.store, "Shop", "list shops", q, limit, offset)
}

func (r *firestoreShopRepository) Mutate(ctx context.Context, id string, fn func(shop *entity.Shop) error) (*entity.Shop, error) {
	ref := r.store.col(collectionShops).Doc(id)
	return call(ctx, r.store, "Shop", "update shop", func(ctx context.Context) (*entity.Shop, error) {
		return mutate(ctx, r.store, ref, nil, func(shop *entity.Shop) error {
			if err := fn(shop); err != nil {
				return err
			}
			shop.UpdatedAt = time.Now()
			return nil
		})
	})
}

func (r *firestoreShopRepository) CreateReview(ctx context.Context, review *entity.ShopReview) error {
	ref := r.store.col(collectionShopReviews).NewDoc()
	review.ID = ref.ID
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	return exec(ctx, r.store, "Shop review", "create shop review", func(ctx context.Context) error {
		_, err := ref.Set(ctx, review)
		return err
	})
}

func shopStatusValues(statuses ...entity.ShopStatus) []string {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}
