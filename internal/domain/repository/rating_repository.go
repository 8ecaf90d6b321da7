package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

type RatingRepository interface {
	// Create fails with a Conflict error when the user already rated the target.
	Create(ctx context.Context, rating *entity.Rating) error
	// ListByTarget returns ratings newest first.
	ListByTarget(ctx context.Context, target entity.RatingTarget, targetID string) ([]*entity.Rating, error)
}
