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

type firestoreCartRepository struct {
	store *Store
}

func NewFirestoreCartRepository(store *Store) repository.CartRepository {
	return &firestoreCartRepository{store: store}
}

func (r *firestoreCartRepository) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	return call(ctx, r.store, "Cart item", "get cart item", func(ctx context.Context) (*entity.CartItem, error) {
		return getDoc[entity.CartItem](ctx, r.store.col(collectionCartItems).Doc(id))
	})
}

func (r *firestoreCartRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	q := r.store.col(collectionCartItems).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc)

	return listAll[entity.CartItem](ctx, r.store, "Cart item", "list cart items", q)
}

func (r *firestoreCartRepository) Upsert(ctx context.Context, id string, fn func(current *entity.CartItem) (*entity.CartItem, error)) (*entity.CartItem, error) {
	ref := r.store.col(collectionCartItems).Doc(id)

	return call(ctx, r.store, "Cart item", "save cart item", func(ctx context.Context) (*entity.CartItem, error) {
		var out *entity.CartItem
		err := r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			var current *entity.CartItem
			doc, err := tx.Get(ref)
			switch {
			case status.Code(err) == codes.NotFound:
			case err != nil:
				return err
			default:
				if current, err = decode[entity.CartItem](doc); err != nil {
					return err
				}
			}

			next, err := fn(current)
			if err != nil {
				return err
			}
			next.ID = id
			next.UpdatedAt = time.Now()
			out = next
			return tx.Set(ref, next)
		})
		return out, err
	})
}

func (r *firestoreCartRepository) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.store, "Cart item", "delete cart item", func(ctx context.Context) error {
		_, err := r.store.col(collectionCartItems).Doc(id).Delete(ctx, firestore.Exists)
		return err
	})
}

// DeleteMany removes all rows in one transaction; already deleted rows are ignored.
func (r *firestoreCartRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return exec(ctx, r.store, "Cart item", "clear cart", func(ctx context.Context) error {
		return r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			for _, id := range ids {
				if err := tx.Delete(r.store.col(collectionCartItems).Doc(id)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
