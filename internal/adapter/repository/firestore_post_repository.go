package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/pkg/errors"
)

type firestorePostRepository struct {
	store *Store
}

func NewFirestorePostRepository(store *Store) repository.PostRepository {
	return &firestorePostRepository{store: store}
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	col := r.store.col(collectionPosts)
	if post.ID == "" {
		post.ID = col.NewDoc().ID
	}
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	return exec(ctx, r.store, "Post", "create post", func(ctx context.Context) error {
		_, err := col.Doc(post.ID).Create(ctx, post)
		return err
	})
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return call(ctx, r.store, "Post", "get post", func(ctx context.Context) (*entity.Post, error) {
		return getDoc[entity.Post](ctx, r.store.col(collectionPosts).Doc(id))
	})
}

func (r *firestorePostRepository) List(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*entity.Post, int64, error) {
	q := r.store.col(collectionPosts).Query
	if filter.UserID != "" {
		q = q.Where("userId", "==", filter.UserID)
	}
	if filter.PostType != "" {
		q = q.Where("postType", "==", string(filter.PostType))
	}

	// Review queues are worked oldest first; everything else reads newest first.
	if filter.ReviewStatus != "" {
		q = q.Where("reviewStatus", "==", string(filter.ReviewStatus))
	}
	if filter.ReviewStatus == entity.ReviewPending {
		q = q.OrderBy("createdAt", firestore.Asc)
	} else {
		q = q.OrderBy("createdAt", firestore.Desc)
	}

	return listPage[entity.Post](ctx, r.store, "Post", "list posts", q, limit, offset)
}

func (r *firestorePostRepository) Mutate(ctx context.Context, id string, fn func(post *entity.Post) error) (*entity.Post, error) {
	ref := r.store.col(collectionPosts).Doc(id)
	return call(ctx, r.store, "Post", "update post", func(ctx context.Context) (*entity.Post, error) {
		return mutate(ctx, r.store, ref, nil, func(post *entity.Post) error {
			if err := fn(post); err != nil {
				return err
			}
			post.UpdatedAt = time.Now()
			return nil
		})
	})
}

func (r *firestorePostRepository) MutateWithProfile(ctx context.Context, id, userID string, fn func(post *entity.Post, profile *entity.UserProfile) error) (*entity.Post, error) {
	postRef := r.store.col(collectionPosts).Doc(id)
	profileRef := r.store.col(collectionProfiles).Doc(userID)

	return call(ctx, r.store, "Post", "settle post", func(ctx context.Context) (*entity.Post, error) {
		var out *entity.Post
		err := r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			postDoc, err := tx.Get(postRef)
			if err != nil {
				return err
			}
			post, err := decode[entity.Post](postDoc)
			if err != nil {
				return err
			}

			profile := entity.NewUserProfile(userID, time.Now())
			profileDoc, err := tx.Get(profileRef)
			switch {
			case status.Code(err) == codes.NotFound:
			case err != nil:
				return err
			default:
				if profile, err = decode[entity.UserProfile](profileDoc); err != nil {
					return err
				}
			}

			if err := fn(post, profile); err != nil {
				return err
			}
			post.UpdatedAt = time.Now()

			if err := tx.Set(postRef, post); err != nil {
				return err
			}
			if err := tx.Set(profileRef, profile); err != nil {
				return err
			}
			out = post
			return nil
		})
		return out, err
	})
}

func (r *firestorePostRepository) Like(ctx context.Context, like *entity.PostLike) error {
	like.ID = entity.PostLikeID(like.UserID, like.PostID)
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	postRef := r.store.col(collectionPosts).Doc(like.PostID)
	likeRef := r.store.col(collectionPostLikes).Doc(like.ID)

	return exec(ctx, r.store, "Post", "like post", func(ctx context.Context) error {
		return r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			if _, err := tx.Get(postRef); err != nil {
				return err
			}
			_, err := tx.Get(likeRef)
			if err == nil {
				return errors.Conflict("post already liked")
			}
			if status.Code(err) != codes.NotFound {
				return err
			}

			if err := tx.Create(likeRef, like); err != nil {
				return err
			}
			return tx.Update(postRef, []firestore.Update{
				{Path: "likesCount", Value: firestore.Increment(1)},
			})
		})
	})
}

func (r *firestorePostRepository) Unlike(ctx context.Context, userID, postID string) error {
	postRef := r.store.col(collectionPosts).Doc(postID)
	likeRef := r.store.col(collectionPostLikes).Doc(entity.PostLikeID(userID, postID))

	return exec(ctx, r.store, "Like", "unlike post", func(ctx context.Context) error {
		return r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			postDoc, err := tx.Get(postRef)
			if err != nil {
				return err
			}
			if _, err := tx.Get(likeRef); err != nil {
				return err
			}
			post, err := decode[entity.Post](postDoc)
			if err != nil {
				return err
			}

			if err := tx.Delete(likeRef); err != nil {
				return err
			}
			if post.LikesCount <= 0 {
				return nil
			}
			return tx.Update(postRef, []firestore.Update{
				{Path: "likesCount", Value: firestore.Increment(-1)},
			})
		})
	})
}

func (r *firestorePostRepository) CreateReview(ctx context.Context, review *entity.PostReview) error {
	ref := r.store.col(collectionPostReviews).NewDoc()
	review.ID = ref.ID
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	return exec(ctx, r.store, "Post review", "create post review", func(ctx context.Context) error {
		_, err := ref.Set(ctx, review)
		return err
	})
}

type firestoreCommentRepository struct {
	store *Store
}

func NewFirestoreCommentRepository(store *Store) repository.CommentRepository {
	return &firestoreCommentRepository{store: store}
}

func (r *firestoreCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	ref := r.store.col(collectionComments).NewDoc()
	comment.ID = ref.ID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	postRef := r.store.col(collectionPosts).Doc(comment.PostID)

	return exec(ctx, r.store, "Post", "create comment", func(ctx context.Context) error {
		return r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			if _, err := tx.Get(postRef); err != nil {
				return err
			}
			if err := tx.Create(ref, comment); err != nil {
				return err
			}
			return tx.Update(postRef, []firestore.Update{
				{Path: "commentsCount", Value: firestore.Increment(1)},
			})
		})
	})
}

func (r *firestoreCommentRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	q := r.store.col(collectionComments).
		Where("postId", "==", postID).
		OrderBy("createdAt", firestore.Asc)

	return listPage[entity.Comment](ctx, r.store, "Comment", "list comments", q, limit, offset)
}

func (r *firestoreCommentRepository) HasCommented(ctx context.Context, postID, userID string) (bool, error) {
	q := r.store.col(collectionComments).
		Where("postId", "==", postID).
		Where("userId", "==", userID).
		Limit(1)

	comments, err := listAll[entity.Comment](ctx, r.store, "Comment", "find comment", q)
	if err != nil {
		return false, err
	}
	return len(comments) > 0, nil
}
