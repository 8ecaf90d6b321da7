package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

// PostFilter narrows post listings; zero fields are ignored.
type PostFilter struct {
	UserID       string
	PostType     entity.PostType
	ReviewStatus entity.ReviewStatus
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*entity.Post, int64, error)
	Mutate(ctx context.Context, id string, fn func(post *entity.Post) error) (*entity.Post, error)
	// MutateWithProfile runs fn on the post and on userID's profile inside one
	// transaction and saves both, so a post never settles without its points
	// moving. A default profile is used when the user has none.
	MutateWithProfile(ctx context.Context, id, userID string, fn func(post *entity.Post, profile *entity.UserProfile) error) (*entity.Post, error)

	// Like stores the like and bumps the post counter in one transaction.
	// A second like by the same user is a Conflict.
	Like(ctx context.Context, like *entity.PostLike) error
	Unlike(ctx context.Context, userID, postID string) error

	CreateReview(ctx context.Context, review *entity.PostReview) error
}

type CommentRepository interface {
	// Create stores the comment and increments the post's comment counter atomically.
	Create(ctx context.Context, comment *entity.Comment) error
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error)
	HasCommented(ctx context.Context, postID, userID string) (bool, error)
}
