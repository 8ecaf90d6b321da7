package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
)

type firestoreRatingRepository struct {
	store *Store
}

func NewFirestoreRatingRepository(store *Store) repository.RatingRepository {
	return &firestoreRatingRepository{store: store}
}

func (r *firestoreRatingRepository) collection(target entity.RatingTarget) *firestore.CollectionRef {
	if target == entity.RatingTargetShop {
		return r.store.col(collectionShopRatings)
	}
	return r.store.col(collectionProductRatings)
}

func (r *firestoreRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	rating.ID = entity.RatingID(rating.UserID, rating.TargetID)
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}

	return exec(ctx, r.store, "Rating", "create rating", func(ctx context.Context) error {
		_, err := r.collection(rating.Target).Doc(rating.ID).Create(ctx, rating)
		return err
	})
}

func (r *firestoreRatingRepository) ListByTarget(ctx context.Context, target entity.RatingTarget, targetID string) ([]*entity.Rating, error) {
	q := r.collection(target).
		Where("targetId", "==", targetID).
		OrderBy("createdAt", firestore.Desc)

	return listAll[entity.Rating](ctx, r.store, "Rating", "list ratings", q)
}
